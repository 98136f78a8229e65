package ngrok

import (
	"context"
	"net"

	"github.com/sirupsen/logrus"
	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"
)

// Run opens a public tunnel for local development. The auth token is
// read from NGROK_AUTHTOKEN.
func Run() net.Listener {
	listener, err := ngrok.Listen(
		context.Background(),
		ngrokconfig.HTTPEndpoint(),
		ngrok.WithAuthtokenFromEnv(),
	)
	if err != nil {
		logrus.Fatalf("failed to start ngrok tunnel: %s", err.Error())
	}
	logrus.Infof("ngrok tunnel established at %s", listener.URL())
	return listener
}
