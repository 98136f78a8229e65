package constant

const (
	ROLE_ID_ADMIN = 1
	ROLE_ID_USER  = 2

	ROLE_NAME_ADMIN = "admin"
	ROLE_NAME_USER  = "user"

	REDIS_REQUEST_RESET_PASSWORD_IP_KEYS      = "reset-password:ip:%s"
	REDIS_REQUEST_MAX_ATTEMPTS_RESET_PASSWORD = 5
	REDIS_REQUEST_IP_EXPIRE                   = 240
	REDIS_KEY_USER_LOGIN                      = "login_token_user_"
	REDIS_KEY_AUTO_LOGOUT                     = "user_auto_logout"
	REDIS_KEY_REFRESH_TOKEN                   = "refresh-token:%s"
	REDIS_MAX_REFRESH_TOKEN                   = 30

	// WS_CHANNEL_TASKS is the per-entity realtime channel prefix; clients
	// subscribe to tasks:<entity_id>.
	WS_CHANNEL_TASKS = "tasks:"

	PATH_ASSETS_IMAGES = "assets/images"
)
