package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/focusnow-app/focusnow-backend/internal/client"
	"github.com/focusnow-app/focusnow-backend/pkg/pomodoro"

	"github.com/spf13/cobra"
)

func tokenPath() string  { return filepath.Join(stateDir, "token") }
func cachePath() string  { return filepath.Join(stateDir, "state.json") }
func legacyPath() string { return filepath.Join(stateDir, "legacy.json") }

// apiClient builds a client with the stored session token, if any.
func apiClient() *client.Client {
	api := client.New(serverURL)
	if data, err := os.ReadFile(tokenPath()); err == nil {
		api.SetToken(strings.TrimSpace(string(data)))
	}
	return api
}

func saveToken(token string) error {
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(tokenPath(), []byte(token), 0o600)
}

// tzOffsetMinutes is the local UTC offset the server needs for day
// boundaries.
func tzOffsetMinutes() int {
	_, offsetSeconds := time.Now().Zone()
	return offsetSeconds / 60
}

func loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the FocusNow server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			fmt.Print("Senha: ")
			reader := bufio.NewReader(os.Stdin)
			senha, err := reader.ReadString('\n')
			if err != nil {
				return err
			}

			api := client.New(serverURL)
			session, err := api.Login(cmd.Context(), email, strings.TrimSpace(senha))
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := saveToken(session.Token); err != nil {
				return err
			}

			cache := client.NewCache(cachePath())
			if err := cache.MigrateLegacy(cmd.Context(), api, legacyPath()); err != nil {
				fmt.Fprintf(os.Stderr, "warning: legacy import failed: %v\n", err)
			}
			if err := cache.Sync(cmd.Context(), api); err != nil {
				fmt.Fprintf(os.Stderr, "warning: initial sync failed: %v\n", err)
			}

			fmt.Printf("Logado como %s (nível %d, %d xp)\n",
				session.User.Nome, session.User.Nivel, session.User.XP)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := apiClient()
			if err := api.Logout(cmd.Context()); err != nil && !client.IsUnauthorized(err) {
				return err
			}
			os.Remove(tokenPath())
			fmt.Println("Sessão encerrada")
			return nil
		},
	}
}

func startCmd() *cobra.Command {
	var cycles int
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run focus sessions and record completed cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := apiClient()
			cache := client.NewCache(cachePath())

			serverCfg, err := api.TimerConfig(cmd.Context())
			if err != nil {
				return fmt.Errorf("could not load timer config: %w", err)
			}

			cfg := pomodoro.DefaultConfig()
			cfg.FocusMinutes = serverCfg.Pomodoro
			cfg.ShortBreakMinutes = serverCfg.ShortBreak
			cfg.LongBreakMinutes = serverCfg.LongBreak
			cfg.LongBreakInterval = serverCfg.LongBreakInterval

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			focusDone := 0
			timer := pomodoro.New(cfg, pomodoro.Callbacks{
				OnComplete: func(c pomodoro.CompletedCycle) {
					// Record off the tick path so a slow network never
					// stalls the countdown.
					go func() {
						res, err := api.RecordCycle(ctx, string(c.Phase), c.DurationMinutes, true)
						if err != nil {
							fmt.Fprintf(os.Stderr, "warning: cycle not recorded: %v\n", err)
							return
						}
						cache.ApplyCycleResult(res)
						if res.LevelUp {
							fmt.Printf("\n🎉 Subiu para o nível %d!\n", res.Nivel)
						}
						for _, id := range res.NewlyUnlocked {
							fmt.Printf("\n🔓 Novo som desbloqueado: %s\n", id)
						}
					}()
					if c.Phase == pomodoro.PhaseFocus {
						focusDone++
						if cycles > 0 && focusDone >= cycles {
							cancel()
						}
					}
				},
				OnWarning: func(pomodoro.Phase) {
					fmt.Print("\a") // terminal bell shortly before the phase ends
				},
				OnPhaseChange: func(phase pomodoro.Phase, running bool) {
					state := "pausado"
					if running {
						state = "em andamento"
					}
					fmt.Printf("\n▶ %s (%s)\n", phaseLabel(phase), state)
				},
			})

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sig
				// An interrupted phase is still logged, as incomplete.
				remaining := timer.Remaining()
				phase := timer.Phase()
				elapsedMin := (phaseSeconds(cfg, phase) - remaining) / 60
				if elapsedMin > 0 {
					api.RecordCycle(context.Background(), string(phase), elapsedMin, false)
				}
				cancel()
			}()

			timer.Start()
			timer.Run(ctx)
			fmt.Printf("\nSessão encerrada: %d ciclo(s) de foco completados\n", focusDone)
			return nil
		},
	}
	cmd.Flags().IntVar(&cycles, "cycles", 0, "stop after N focus cycles (0 = run until interrupted)")
	return cmd
}

func phaseLabel(p pomodoro.Phase) string {
	switch p {
	case pomodoro.PhaseShortBreak:
		return "Pausa curta"
	case pomodoro.PhaseLongBreak:
		return "Pausa longa"
	default:
		return "Foco"
	}
}

func phaseSeconds(cfg pomodoro.Config, p pomodoro.Phase) int {
	switch p {
	case pomodoro.PhaseShortBreak:
		return cfg.ShortBreakMinutes * 60
	case pomodoro.PhaseLongBreak:
		return cfg.LongBreakMinutes * 60
	default:
		return cfg.FocusMinutes * 60
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show all-time statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := apiClient().Statistics(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Ciclos totais:      %d\n", stats.TotalCiclos)
			fmt.Printf("Ciclos de foco:     %d\n", stats.CiclosFoco)
			fmt.Printf("Ciclos completados: %d\n", stats.CiclosCompletados)
			fmt.Printf("Minutos focados:    %d\n", stats.TotalMinutos)
			return nil
		},
	}
}

func streakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the current and best focus streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			streak, err := apiClient().Streak(cmd.Context(), tzOffsetMinutes())
			if err != nil {
				return err
			}
			fmt.Printf("Streak atual:  %d dia(s)\n", streak.CurrentStreak)
			fmt.Printf("Melhor streak: %d dia(s)\n", streak.BestStreak)
			if streak.LastFocusDate != nil {
				fmt.Printf("Último foco:   %s\n", *streak.LastFocusDate)
			}
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the last recorded cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cycles, err := apiClient().History(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range cycles {
				status := "✔"
				if !c.Completado {
					status = "✘"
				}
				fmt.Printf("%s  %-12s %3d min  %s\n",
					c.DataConclusao.Local().Format("2006-01-02 15:04"),
					c.Tipo, c.Duracao, status)
			}
			return nil
		},
	}
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local cache from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := apiClient()
			cache := client.NewCache(cachePath())
			if err := cache.Sync(cmd.Context(), api); err != nil {
				return err
			}
			state := cache.State()
			fmt.Printf("Sincronizado: nível %d, %d xp, %d som(ns) desbloqueado(s), %d item(ns) na playlist\n",
				state.Nivel, state.XP, len(state.Unlocks), len(state.Playlist))
			return nil
		},
	}
}
