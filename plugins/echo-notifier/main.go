// Command echo-notifier is the reference notifier plugin. It appends every
// notification to a log file next to the binary, which makes it handy for
// exercising the plugin host end to end.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-plugin"

	notifyrpc "pomoterm/internal/modules/notify/adapter/out/rpc"
)

type server struct {
	logPath string
}

func (s *server) GetMetadata(_ context.Context, _ *notifyrpc.Empty) (*notifyrpc.Metadata, error) {
	return &notifyrpc.Metadata{
		Name:    "echo-notifier",
		Version: "1.0.0",
	}, nil
}

func (s *server) Notify(_ context.Context, in *notifyrpc.NotifyRequest) (*notifyrpc.NotifyResponse, error) {
	f, err := os.OpenFile(s.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open notification log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s\t%s\t%s\n", time.Now().UTC().Format(time.RFC3339), in.Title, in.Body)
	if _, err := f.WriteString(line); err != nil {
		return nil, fmt.Errorf("append notification: %w", err)
	}
	return &notifyrpc.NotifyResponse{Delivered: true}, nil
}

func main() {
	self, err := os.Executable()
	if err != nil {
		self = "echo-notifier"
	}
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifyrpc.HandshakeConfig,
		Plugins: notifyrpc.PluginMap(&server{
			logPath: filepath.Join(filepath.Dir(self), "notifications.log"),
		}),
		GRPCServer: plugin.DefaultGRPCServer,
	})
}
