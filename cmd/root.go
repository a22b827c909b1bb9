// Copyright 2023 Huawei Cloud Computing Technologies Co., Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/openGemini/vsanup/pkg/cluster/ctxt"
	"github.com/openGemini/vsanup/pkg/cluster/manager"
	"github.com/openGemini/vsanup/pkg/cluster/spec"
	"github.com/openGemini/vsanup/pkg/gui"
	"github.com/openGemini/vsanup/pkg/localdata"
	logprinter "github.com/openGemini/vsanup/pkg/logger/printer"
	"github.com/openGemini/vsanup/pkg/vsan"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalOptions struct {
	Host     string
	Port     int
	User     string
	Password string
	Cluster  string
	Insecure bool
	LogLevel string
}

var (
	gOpt   globalOptions
	runID  string
	logger = logprinter.NewLogger(nil)
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "vsanup",
	Short: "Upgrade the on-disk format of a vSAN cluster",
	Long: `vsanup upgrades the disks of a vSAN cluster to the highest on-disk format version
the cluster supports. autoClaimStorage is turned off during the upgrade and restored
afterwards, deduplication and compression can be enabled as part of it.

Running vsanup without a command is the same as "vsanup upgrade".`,
	Example: `
$ vsanup -s vc.example.com -u administrator@vsphere.local --cluster VSAN-Cluster
$ vsanup upgrade -s vc.example.com -u administrator@vsphere.local --reduceredundancy
$ vsanup check -s vc.example.com -u administrator@vsphere.local
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return initGlobal(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpgrade(cmd, upgradeOpt)
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&gOpt.Host, "host", "s", "", "Remote host to connect to")
	flags.IntVarP(&gOpt.Port, "port", "o", 443, "Port to connect on")
	flags.StringVarP(&gOpt.User, "user", "u", "", "User name to use when connecting to host")
	flags.StringVarP(&gOpt.Password, "password", "p", "", "Password to use when connecting to host, prompted if absent")
	flags.StringVar(&gOpt.Cluster, "cluster", "VSAN-Cluster", "Name of the vSAN cluster")
	flags.BoolVar(&gOpt.Insecure, "insecure", true, "Skip the verification of the server certificate and host name")
	flags.StringVar(&gOpt.LogLevel, "log-level", "info", "Level of the log file written under the profile directory")

	addUpgradeFlags(RootCmd, &upgradeOpt)
	RootCmd.AddCommand(newUpgradeCmd(), newCheckCmd(), versionCmd)
	gui.BeautifyCobraUsageAndHelp(RootCmd)
}

// initGlobal merges the profile config into the flags and opens the log file.
func initGlobal(cmd *cobra.Command) error {
	cfg, err := localdata.InitConfig(localdata.ProfileDir())
	if err != nil {
		return err
	}
	mergeConfig(cmd.Flags().Changed, cfg, &gOpt)

	runID = uuid.New().String()
	zl, err := logprinter.NewFileLogger(gOpt.LogLevel, filepath.Join(localdata.LogDir(), "vsanup-"+runID+".log"))
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(zl.With(zap.String("run_id", runID)))
	logger = logprinter.NewLogger(zap.L())
	logger.Debugf("vsanup %s started: %v", Version, os.Args[1:])
	return nil
}

// mergeConfig fills the options the user did not set on the command line
// from the profile config.
func mergeConfig(changed func(name string) bool, cfg *localdata.VsanupConfig, opt *globalOptions) {
	if !changed("host") && cfg.Host != "" {
		opt.Host = cfg.Host
	}
	if !changed("port") && cfg.Port != 0 {
		opt.Port = cfg.Port
	}
	if !changed("user") && cfg.User != "" {
		opt.User = cfg.User
	}
	if !changed("cluster") && cfg.Cluster != "" {
		opt.Cluster = cfg.Cluster
	}
	if !changed("insecure") {
		opt.Insecure = cfg.Insecure
	}
	if !changed("log-level") && cfg.LogLevel != "" {
		opt.LogLevel = cfg.LogLevel
	}
}

var promptForPassword = gui.PromptForPassword

// password returns the password from the flag, the environment or the terminal, in that order.
func password(opt globalOptions) (string, error) {
	if opt.Password != "" {
		return opt.Password, nil
	}
	if p := os.Getenv(localdata.EnvNamePassword); p != "" {
		return p, nil
	}
	p, err := promptForPassword("Enter password for host %s and user %s: ", opt.Host, opt.User)
	if err != nil {
		return "", vsan.ErrConnect.Wrap(err, "Failed to read the password of %s", opt.User).
			WithProperty(gui.SuggestionFromFormat("Pass the password with --password or set $%s", localdata.EnvNamePassword))
	}
	return p, nil
}

// connect logs in and returns the context every command runs with.
func connect(cmd *cobra.Command) (context.Context, *vsan.Session, error) {
	if err := gui.CheckRequiredFlags(cmd, map[string]string{
		"host": gOpt.Host,
		"user": gOpt.User,
	}); err != nil {
		return nil, nil, err
	}

	pass, err := password(gOpt)
	if err != nil {
		return nil, nil, err
	}

	ctx := ctxt.New(cmd.Context(), runID, logger)
	session, err := vsan.Connect(ctx, vsan.Config{
		Host:     gOpt.Host,
		Port:     gOpt.Port,
		User:     gOpt.User,
		Password: pass,
		Insecure: gOpt.Insecure,
	})
	if err != nil {
		return nil, nil, err
	}
	return ctx, session, nil
}

func disconnect(ctx context.Context, session *vsan.Session) {
	if err := session.Close(context.WithoutCancel(ctx)); err != nil {
		logger.Warnf("Failed to log out from %s: %v", gOpt.Host, err)
	}
}

func newManager(session *vsan.Session) *manager.Manager {
	return manager.NewManager(session, spec.NewSpec(localdata.ClusterDir()), logger)
}

// Execute runs the root command and exits the process.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := 0
	if err := RootCmd.ExecuteContext(ctx); err != nil {
		gui.ColorErrorMsg(err)
		zap.L().Error("vsanup failed", zap.Error(err))
		code = 1
	}
	stop()
	_ = zap.L().Sync()
	os.Exit(code)
}
