package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"portfolio/api"
	"portfolio/contact"
	"portfolio/define"
	"portfolio/display"
	"portfolio/project"
	"portfolio/typing"
)

// 关闭 HTTP 服务的最长等待时间
const shutdownTimeout = 5 * time.Second

var serveFlags struct {
	host       string
	port       int
	themeStore string
	dbPath     string
	noTyping   bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(func(cfg *define.Config) {
			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.Server.Host = serveFlags.host
			}
			if flags.Changed("port") {
				cfg.Server.Port = serveFlags.port
			}
			if flags.Changed("theme-store") {
				cfg.Theme.Store = serveFlags.themeStore
			}
			if flags.Changed("db") {
				cfg.Theme.DBPath = serveFlags.dbPath
			}
			if serveFlags.noTyping {
				cfg.Typing.AutoStart = ""
			}
		})
		if err != nil {
			return err
		}
		return runServe(cmd.Context(), cfg)
	},
}

func init() {
	flags := serveCmd.Flags()
	flags.StringVar(&serveFlags.host, "host", "", "监听地址")
	flags.IntVarP(&serveFlags.port, "port", "p", 0, "Web 服务的端口")
	flags.StringVar(&serveFlags.themeStore, "theme-store", "", "主题偏好存储：memory 或 sqlite")
	flags.StringVar(&serveFlags.dbPath, "db", "", "SQLite 数据库路径")
	flags.BoolVar(&serveFlags.noTyping, "no-typing", false, "启动时不播放打字效果")
	rootCmd.AddCommand(serveCmd)
}

// 打印服务配置
func logConfig(cfg *define.Config) {
	log.Printf("🔧 服务配置：")
	log.Printf("   - 监听地址: %s", cfg.Server.Addr())
	log.Printf("   - 运行模式: %s", cfg.Server.Mode)
	log.Printf("   - 主题存储: %s", cfg.Theme)
	log.Printf("   - 文案集数量: %d", len(cfg.Typing.Sets))
	log.Printf("   - 自动播放: %s", cfg.Typing.AutoStart)
}

func runServe(ctx context.Context, cfg *define.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("🚀 启动作品集服务 %s", Version)
	logConfig(cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	broadcaster := display.NewBroadcaster(0)
	engine, err := newEngine(cfg, broadcaster, nil, typing.MustNewMetrics(registry))
	if err != nil {
		return err
	}
	catalog, err := newCatalog(cfg)
	if err != nil {
		return err
	}
	renderer, err := project.NewRenderer(catalog.Len() * 2)
	if err != nil {
		return err
	}
	themes, closeThemes, err := openThemeStore(cfg)
	if err != nil {
		return err
	}
	defer closeThemes()

	if cfg.Typing.AutoStart != "" {
		if err := engine.Start(cfg.Typing.AutoStart); err != nil {
			return err
		}
	}
	defer engine.Stop()

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	if cfg.Server.EnableCORS {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api.NewServer(api.Options{
		Engine:      engine,
		Broadcaster: broadcaster,
		Catalog:     catalog,
		Renderer:    renderer,
		Submitter:   contact.NewSubmitter(nil, cfg.Contact.SubmitTiming()),
		Themes:      themes,
		Registry:    registry,
		Version:     Version,
	}).SetupRoutes(r)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("🌐 作品集服务运行在 http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("👋 正在关闭作品集服务...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("❌ 服务异常退出：%v", err)
		return err
	}
	log.Printf("✅ 作品集服务已停止")
	return nil
}
