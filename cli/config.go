package cli

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"portfolio/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "查看或生成配置文件",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "把默认配置写入配置文件",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil && !configForce {
			return fmt.Errorf("配置文件 %s 已存在，使用 --force 覆盖", cfgFile)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if err := config.Save(config.DefaultConfig(), cfgFile); err != nil {
			return err
		}
		log.Printf("✅ 默认配置已写入 %s", cfgFile)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "打印合并后的配置",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(nil)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "覆盖已存在的配置文件")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
