// @title           ZAI Proxy API
// @version         1.0.0
// @description     OpenAI-compatible chat completions backed by chat.z.ai.
// @BasePath        /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"zai-proxy/internal/app"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "zai-proxy",
		Short:         "OpenAI-compatible proxy for chat.z.ai",
		Long:          "zai-proxy accepts OpenAI chat completion requests and forwards them to chat.z.ai,\ntranslating its event stream back into chat.completion.chunk events.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if code := app.Run(); code != 0 {
				return fmt.Errorf("server exited with code %d", code)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("host", "", "address to listen on (env HOST)")
	flags.Int("port", 0, "port to listen on (env PORT)")
	flags.Bool("debug", false, "expose /docs and error details (env DEBUG)")
	flags.String("log-level", "", "DEBUG, INFO, WARN or ERROR (env LOG_LEVEL)")
	flags.String("log-format", "", "json, text or pretty (env LOG_FORMAT)")
	flags.String("proxy-url", "", "upstream base URL (env PROXY_URL)")

	for key, name := range map[string]string{
		"HOST":       "host",
		"PORT":       "port",
		"DEBUG":      "debug",
		"LOG_LEVEL":  "log-level",
		"LOG_FORMAT": "log-format",
		"PROXY_URL":  "proxy-url",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
