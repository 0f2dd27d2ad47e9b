package cli

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"portfolio/define"
	"portfolio/display"
	"portfolio/schedule"
	"portfolio/typing"
)

var typewriterFlags struct {
	set    string
	prefix string
}

var typewriterCmd = &cobra.Command{
	Use:   "typewriter",
	Short: "在终端中播放打字效果",
	Long:  `在终端中播放一个文案集的打字效果，按 Esc、q 或 Ctrl+C 退出。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(func(cfg *define.Config) {
			if typewriterFlags.set != "" {
				cfg.Typing.AutoStart = typewriterFlags.set
			}
		})
		if err != nil {
			return err
		}
		return runTypewriter(cfg)
	},
}

func init() {
	flags := typewriterCmd.Flags()
	flags.StringVarP(&typewriterFlags.set, "set", "s", "", "播放的文案集，默认使用配置中的 auto_start")
	flags.StringVar(&typewriterFlags.prefix, "prefix", "> ", "文本前缀")
	rootCmd.AddCommand(typewriterCmd)
}

func runTypewriter(cfg *define.Config) error {
	name := cfg.Typing.AutoStart
	if name == "" {
		name = typing.DefaultSetName
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("创建终端失败：%w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("初始化终端失败：%w", err)
	}
	defer screen.Fini()

	screen.Clear()
	drawHint(screen, fmt.Sprintf("portfolio typewriter [%s]  Esc/q 退出", name))

	terminal := display.NewTerminal(screen, 2, 2, display.WithPrefix(typewriterFlags.prefix))
	engine, err := newEngine(cfg, terminal, schedule.NewTimer(), nil)
	if err != nil {
		return err
	}
	if err := engine.Start(name); err != nil {
		return err
	}
	defer engine.Stop()

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				log.Printf("👋 退出打字效果")
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
		}
		if !engine.IsRunning() {
			return fmt.Errorf("打字效果意外停止")
		}
	}
}

func drawHint(screen tcell.Screen, text string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range []rune(text) {
		screen.SetContent(i, 0, r, nil, style)
	}
	screen.Show()
}
