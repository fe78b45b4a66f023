// Command linknorm-go normalizes proxy share links into canonical
// configuration records, either one-shot on the command line or as a small
// HTTP service for the desktop console.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/John-Robertt/linknorm-go/internal/httpapi"
	"github.com/John-Robertt/linknorm-go/internal/link"
	"github.com/John-Robertt/linknorm-go/internal/render"
	"github.com/John-Robertt/linknorm-go/internal/validate"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "linknorm-go",
		Short:         "代理分享链接规范化工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(serveCmd(), decodeCmd())
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		listen            string
		readHeaderTimeout time.Duration
		shutdownTimeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			srv := &http.Server{
				Addr:              listen,
				Handler:           httpapi.NewHandler(httpapi.Options{Logger: logger}),
				ReadHeaderTimeout: readHeaderTimeout,
			}

			logger.Info("listening", zap.String("addr", listen))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				logger.Info("shutdown signal received")

				shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shCtx); err != nil {
					logger.Warn("graceful shutdown failed", zap.Error(err))
					_ = srv.Close()
				}

				err := <-errCh
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:25600", "HTTP 监听地址")
	cmd.Flags().DurationVar(&readHeaderTimeout, "read-header-timeout", 5*time.Second, "HTTP ReadHeaderTimeout（请求头读取超时）")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "收到退出信号后的优雅退出等待时间")
	return cmd
}

func decodeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "decode <link>",
		Short: "解析一条分享链接并输出规范化配置",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := link.Decode(args[0])
			if err != nil {
				return err
			}

			if errs := validate.Config(&cfg); len(errs) != 0 {
				// Field findings go to stderr; the record is still printed.
				for field, fe := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "field %s: %s: %s\n", field, fe.Kind, fe.Message)
				}
			}

			switch format {
			case "yaml":
				out, err := render.Clash(&cfg)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(cfg); err != nil {
					return err
				}
			default:
				return fmt.Errorf("不支持的 format（仅支持 yaml/json）: %s", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "输出格式：yaml（mihomo 代理块）或 json（规范化记录）")
	return cmd
}
