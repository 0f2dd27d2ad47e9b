package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"portfolio/config"
	"portfolio/define"
	"portfolio/project"
	"portfolio/schedule"
	"portfolio/theme"
	"portfolio/typing"
)

// Version 程序版本
var Version = "1.0.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "作品集页面的交互服务",
	Long: `portfolio 为个人作品集页面提供交互能力：首页标题的打字效果、
项目详情浮层、联系表单校验、主题偏好以及导航高亮计算。

配置来源优先级：命令行参数 > PORTFOLIO_* 环境变量 > 配置文件 > 默认值。
环境变量层级用双下划线分隔，例如 PORTFOLIO_SERVER__PORT=8080。`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute 执行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "配置文件路径")
}

// loadConfig 加载并校验配置，成功后保存到 config.Config
func loadConfig(override func(*define.Config)) (*define.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("配置无效：%w", err)
	}

	config.Config = cfg
	return cfg, nil
}

// newEngine 创建打字效果引擎并注册配置中的文案集
func newEngine(cfg *define.Config, sink typing.Sink, scheduler schedule.Scheduler, metrics *typing.Metrics) (*typing.Engine, error) {
	engine := typing.NewEngine(sink, scheduler, cfg.Typing.Timing(), metrics)
	for _, set := range cfg.Typing.Sets {
		if err := engine.Register(set); err != nil {
			return nil, fmt.Errorf("注册文案集 %s 失败：%w", set.Name, err)
		}
	}
	return engine, nil
}

// newCatalog 内置项目加上配置中的项目
func newCatalog(cfg *define.Config) (*project.Catalog, error) {
	catalog := project.NewDefaultCatalog()
	for _, p := range cfg.Projects {
		if err := catalog.Register(p); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// openThemeStore 按配置打开主题存储，返回的函数用于关闭
func openThemeStore(cfg *define.Config) (theme.Store, func(), error) {
	if cfg.Theme.Store != define.ThemeStoreSQLite {
		return theme.NewMemoryStore(), func() {}, nil
	}

	store, err := theme.OpenSQLite(cfg.Theme.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Printf("⚠️ 关闭主题数据库失败：%v", err)
		}
	}, nil
}
