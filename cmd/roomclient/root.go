package main

import (
	"fmt"

	"github.com/dkeye/roomclient/internal/adapters/nav"
	"github.com/dkeye/roomclient/internal/config"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/dkeye/roomclient/internal/params"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type joinFlags struct {
	room        string
	name        string
	role        string
	env         string
	roomName    string
	audioOnly   bool
	videoOnly   bool
	audioDevice string
	videoDevice string
	yes         bool
}

func (f joinFlags) login(room domain.RoomID, role domain.Role, env domain.Env) domain.LoginInfo {
	return domain.LoginInfo{
		RoomID:              room,
		RoomName:            f.roomName,
		DisplayName:         f.name,
		Role:                role,
		Env:                 env,
		AudioOnly:           f.audioOnly,
		VideoOnly:           f.videoOnly,
		SelectedAudioDevice: f.audioDevice,
		SelectedVideoDevice: f.videoDevice,
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var cfg *config.Config

	root := &cobra.Command{
		Use:          "roomclient",
		Short:        "Join a real-time audio/video room from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.Load(v)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(c.Level())
			cfg = c
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("control-addr", "", "listen address of the local control API, empty to disable")
	pf.String("token-endpoint", "", "credential endpoint")
	pf.String("sfu-host", "", "signaling host, defaults to the page host")
	pf.String("state-file", "", "where the last room url is kept")
	bindFlag(v, "log_level", root, "log-level")
	bindFlag(v, "control_addr", root, "control-addr")
	bindFlag(v, "token_endpoint", root, "token-endpoint")
	bindFlag(v, "sfu_host", root, "sfu-host")
	bindFlag(v, "state_file", root, "state-file")

	getCfg := func() *config.Config { return cfg }
	root.AddCommand(newJoinCmd(getCfg), newResumeCmd(getCfg), newValidateCmd())
	return root
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(name))
}

func addSessionFlags(cmd *cobra.Command, f *joinFlags) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "display name")
	fl.StringVar(&f.roomName, "room-name", "", "room name shown in the welcome notice")
	fl.BoolVar(&f.audioOnly, "audio-only", false, "join with the camera off")
	fl.BoolVar(&f.videoOnly, "video-only", false, "join with the microphone off")
	fl.StringVar(&f.audioDevice, "audio-device", "", "capture device for audio")
	fl.StringVar(&f.videoDevice, "video-device", "", "capture device for video")
	fl.BoolVarP(&f.yes, "yes", "y", false, "leave without asking")
	_ = cmd.MarkFlagRequired("name")
}

func newJoinCmd(cfg func() *config.Config) *cobra.Command {
	var f joinFlags
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a room",
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, ok := domain.ParseRole(f.role)
			if !ok {
				return params.Result{Field: params.FieldRole}.Err()
			}
			env, ok := domain.ParseEnv(f.env)
			if !ok {
				return params.Result{Field: params.FieldEnv}.Err()
			}
			return runSession(cmd.Context(), cfg(), f.login(domain.RoomID(f.room), role, env), f.yes)
		},
	}
	cmd.Flags().StringVar(&f.room, "room", "", "room id")
	cmd.Flags().StringVar(&f.role, "role", string(domain.RoleGuest), "role in the room")
	cmd.Flags().StringVar(&f.env, "env", string(domain.EnvProd), "backend environment")
	_ = cmd.MarkFlagRequired("room")
	addSessionFlags(cmd, &f)
	return cmd
}

func newResumeCmd(cfg func() *config.Config) *cobra.Command {
	var f joinFlags
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Rejoin the room of the last session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cfg()
			last, err := nav.NewFileNavigator(c.StateFile).Last()
			if err != nil {
				return err
			}
			r, err := params.ParseShareURL(last)
			if err != nil {
				return fmt.Errorf("saved url %q: %w", last, err)
			}
			return runSession(cmd.Context(), c, f.login(r.RoomID, r.Role, r.Env), f.yes)
		},
	}
	addSessionFlags(cmd, &f)
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <query>",
		Short: "Check room parameters such as 'room=abc&env=qa&role=host'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := params.Validate(args[0])
			if res.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "invalid %s\n", res.Field)
			return res.Err()
		},
	}
}
