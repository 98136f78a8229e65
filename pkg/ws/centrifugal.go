package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"tasktrack/internal/config"
	"tasktrack/internal/factory"
	"tasktrack/internal/middleware"
	"tasktrack/pkg/constant"

	"github.com/centrifugal/centrifuge"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

var NodeCentrifugal *centrifuge.Node

type clientScope struct {
	EntityId int
	RoleId   int
}

var (
	scopeMu      sync.RWMutex
	clientScopes = make(map[string]clientScope)
)

func handleLog(e centrifuge.LogEntry) {
	logrus.Infof("%s: %v", e.Message, e.Fields)
}

func InitCentrifugal(ctx context.Context, e *echo.Echo, f *factory.Factory) {
	var err error

	NodeCentrifugal, err = centrifuge.New(centrifuge.Config{
		LogLevel:   centrifuge.LogLevelError,
		LogHandler: handleLog,
	})
	if err != nil {
		panic(err)
	}

	NodeCentrifugal.OnConnecting(func(ctx context.Context, e centrifuge.ConnectEvent) (centrifuge.ConnectReply, error) {
		logrus.Infof("users try connecting: %s", e.ClientID)
		dataContext, err := middleware.JustValidateToken(e.Token)
		if err != nil {
			if err.Code == http.StatusUnauthorized {
				return centrifuge.ConnectReply{}, centrifuge.ErrorTokenExpired // 109 - token expired
			} else {
				logrus.Infof("error on connecting: %s", err.Error())
				return centrifuge.ConnectReply{}, centrifuge.DisconnectInvalidToken // 3500 - invalid token
			}
		}

		scopeMu.Lock()
		clientScopes[e.ClientID] = clientScope{
			EntityId: dataContext.Auth.EntityID,
			RoleId:   dataContext.Auth.RoleID,
		}
		scopeMu.Unlock()

		return centrifuge.ConnectReply{
			Credentials: &centrifuge.Credentials{
				UserID: strconv.Itoa(dataContext.Auth.ID),
			},
		}, nil
	})

	NodeCentrifugal.OnConnect(func(client *centrifuge.Client) {
		transport := client.Transport()
		logrus.Infof("user %s connected via %s with protocol: %s", client.UserID(), transport.Name(), transport.Protocol())

		client.OnRefresh(func(e centrifuge.RefreshEvent, cb centrifuge.RefreshCallback) {
			logrus.Infof("user %s connection is going to expire, refreshing", client.UserID())
			cb(centrifuge.RefreshReply{ExpireAt: time.Now().Unix() + 60*10}, nil)
		})

		client.OnSubRefresh(func(e centrifuge.SubRefreshEvent, cb centrifuge.SubRefreshCallback) {
			logrus.Infof("user %s connection is going to expire, refreshing sub", client.UserID())
			cb(centrifuge.SubRefreshReply{ExpireAt: time.Now().Unix() + 60*10}, nil)
		})

		client.OnSubscribe(func(e centrifuge.SubscribeEvent, cb centrifuge.SubscribeCallback) {
			logrus.Infof("user %s subscribes on %s", client.UserID(), e.Channel)

			scopeMu.RLock()
			scope, known := clientScopes[client.ID()]
			scopeMu.RUnlock()
			if !known {
				cb(centrifuge.SubscribeReply{}, centrifuge.ErrorPermissionDenied)
				return
			}

			// Admins can watch any entity channel, everyone else only
			// the channel of their own entity.
			ownChannel := TaskChannel(scope.EntityId)
			if e.Channel != ownChannel && scope.RoleId != constant.ROLE_ID_ADMIN {
				cb(centrifuge.SubscribeReply{}, centrifuge.ErrorPermissionDenied)
				logrus.Infof("denied user %s subscribes on %s", client.UserID(), e.Channel)
				return
			}

			cb(centrifuge.SubscribeReply{}, nil)
		})

		client.OnDisconnect(func(e centrifuge.DisconnectEvent) {
			scopeMu.Lock()
			delete(clientScopes, client.ID())
			scopeMu.Unlock()
			logrus.Infof("user %s disconnected, disconnect: %s", client.UserID(), e.Disconnect)
		})
	})

	address := fmt.Sprintf("%s:%s", config.Get().Redis.RedisHost, config.Get().Redis.RedisPort)

	redisShardConfigs := []centrifuge.RedisShardConfig{
		{
			Address:  address,
			User:     config.Get().Redis.RedisUser,
			Password: config.Get().Redis.RedisPassword,
		},
	}

	var redisShards []*centrifuge.RedisShard
	for _, redisConf := range redisShardConfigs {
		redisShard, err := centrifuge.NewRedisShard(NodeCentrifugal, redisConf)
		if err != nil {
			logrus.Fatal(err)
		}
		redisShards = append(redisShards, redisShard)
	}

	broker, err := centrifuge.NewRedisBroker(NodeCentrifugal, centrifuge.RedisBrokerConfig{
		Shards: redisShards,
	})
	if err != nil {
		logrus.Fatal(err)
	}
	NodeCentrifugal.SetBroker(broker)

	presenceManager, err := centrifuge.NewRedisPresenceManager(NodeCentrifugal, centrifuge.RedisPresenceManagerConfig{
		Shards: redisShards,
	})
	if err != nil {
		logrus.Fatal(err)
	}
	NodeCentrifugal.SetPresenceManager(presenceManager)

	if err := NodeCentrifugal.Run(); err != nil {
		logrus.Fatalf("Error on start centrifuge: %v", err)
	}

	websocketHandler := centrifuge.NewWebsocketHandler(NodeCentrifugal, centrifuge.WebsocketConfig{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	})

	e.GET("/websocket", convert(websocketHandler))

	go shutdownOnDone(ctx, NodeCentrifugal)
}

// shutdownOnDone blocks until ctx is cancelled, then stops the node.
func shutdownOnDone(ctx context.Context, node *centrifuge.Node) {
	<-ctx.Done()
	ctx2, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	node.Shutdown(ctx2)
	logrus.Println("centrifugal is stopped")
}

func convert(h http.Handler) echo.HandlerFunc {
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response().Writer, c.Request())
		return nil
	}
}

// TaskChannel names the realtime channel carrying task events of one entity.
func TaskChannel(entityId int) string {
	return constant.WS_CHANNEL_TASKS + strconv.Itoa(entityId)
}

// PublishTaskEvent pushes a task mutation to the owning entity's
// channel. Publishing is best effort, a delivery failure never fails
// the request that caused it.
func PublishTaskEvent(entityId int, action string, data interface{}) {
	if NodeCentrifugal == nil {
		return
	}

	payload := map[string]interface{}{
		"action": action,
		"data":   data,
	}
	byteData, err := json.Marshal(payload)
	if err != nil {
		logrus.Errorf("something wrong: %s", err)
		return
	}

	_, err = NodeCentrifugal.Publish(TaskChannel(entityId), byteData)
	if err != nil {
		logrus.Errorf("error publishing: %v", err)
	}
}
