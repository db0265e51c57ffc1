package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/XiPeng415/kg-explorer/internal/profile"
	"github.com/XiPeng415/kg-explorer/server"
	"github.com/XiPeng415/kg-explorer/store"
	"github.com/XiPeng415/kg-explorer/store/db"
)

const greetingBanner = `
██╗  ██╗ ██████╗ ██╗  ██╗
██║ ██╔╝██╔════╝ ╚██╗██╔╝
█████╔╝ ██║  ███╗ ╚███╔╝
██╔═██╗ ██║   ██║ ██╔██╗
██║  ██╗╚██████╔╝██╔╝ ██╗
╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝
`

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "kg-explorer",
	Short: "A knowledge-graph explorer for urban parcels: ask questions about categories, metrics, and shared-facility relationships.",
	Run: func(_cmd *cobra.Command, _args []string) {
		setupLogger(viper.GetString("log-level"))

		instanceProfile := &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Driver:  viper.GetString("driver"),
			DSN:     viper.GetString("dsn"),
			WebRoot: viper.GetString("web-root"),
			Version: version,
		}
		if err := instanceProfile.Validate(); err != nil {
			slog.Error("invalid profile", slog.String("error", err.Error()))
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		graphStore, err := loadStore(ctx, instanceProfile)
		if err != nil {
			slog.Error("failed to load dataset", slog.String("error", err.Error()))
			os.Exit(1)
		}

		s, err := server.NewServer(instanceProfile, graphStore, slog.Default())
		if err != nil {
			slog.Error("failed to create server", slog.String("error", err.Error()))
			os.Exit(1)
		}

		printGreetings(instanceProfile, graphStore)
		if err := s.Start(ctx); err != nil {
			slog.Error("server exited with error", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("server stopped")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of kg-explorer",
	Run: func(_cmd *cobra.Command, _args []string) {
		fmt.Println(version)
	},
}

// loadStore reads the dataset once through the configured driver and
// builds the immutable in-memory graph. The driver is closed right after
// the load; nothing reads the file again.
func loadStore(ctx context.Context, instanceProfile *profile.Profile) (*store.Store, error) {
	driver, err := db.NewDriver(instanceProfile)
	if err != nil {
		return nil, err
	}
	snapshot, err := driver.LoadSnapshot(ctx)
	if err != nil {
		_ = driver.Close()
		return nil, err
	}
	if err := driver.Close(); err != nil {
		return nil, err
	}
	return store.New(snapshot)
}

func setupLogger(levelName string) {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(levelName)})
	slog.SetDefault(slog.New(handler))
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printGreetings(instanceProfile *profile.Profile, graphStore *store.Store) {
	fmt.Print(greetingBanner)
	fmt.Printf("Version %s has been started on port %d\n", instanceProfile.Version, instanceProfile.Port)
	fmt.Printf("Dataset: %d parcels, %d relationships (%s driver, %s mode)\n",
		graphStore.ParcelCount(), graphStore.EdgeCount(), instanceProfile.Driver, instanceProfile.Mode)
}

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("driver", "jsonfile")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8081)

	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "jsonfile", `dataset driver, can be "jsonfile" or "sqlite"`)
	rootCmd.PersistentFlags().String("dsn", "", "path to the dataset file, derived from the data directory when empty")
	rootCmd.PersistentFlags().String("web-root", "", "directory with the static explorer UI build")
	rootCmd.PersistentFlags().String("log-level", "info", `log level, can be "debug", "info", "warn" or "error"`)

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("kge")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
