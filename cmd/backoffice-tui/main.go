package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realty-backoffice/internal/adapters/backoffice_client"
	"realty-backoffice/internal/configs"
	"realty-backoffice/internal/core/listing"
	"realty-backoffice/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := configs.LoadClientConfig()

	cmd := &cobra.Command{
		Use:           "backoffice-tui",
		Short:         "Browse property offers and client demands of the back office",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Mode != configs.ListModeServer && cfg.Mode != configs.ListModeLoaded {
				return fmt.Errorf("unknown mode %q: use %s or %s", cfg.Mode, configs.ListModeServer, configs.ListModeLoaded)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "back-office service base URL (API_BASE_URL)")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout (API_TIMEOUT)")
	flags.StringVar(&cfg.Mode, "mode", cfg.Mode, "list mode: server or loaded (LIST_MODE)")
	flags.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "rows per page, 0 for the default (LIST_PAGE_SIZE)")
	flags.StringVarP(&cfg.Email, "email", "e", cfg.Email, "account email (BACKOFFICE_EMAIL)")
	flags.StringVar(&cfg.Password, "password", cfg.Password, "account password (BACKOFFICE_PASSWORD)")
	return cmd
}

func run(ctx context.Context, cfg *configs.ClientConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return errors.New("email and password are required: use --email/--password or BACKOFFICE_EMAIL/BACKOFFICE_PASSWORD")
	}

	client := backoffice_client.NewClient(cfg.APIBaseURL, cfg.Timeout, backoffice_client.NewMemoryTokenStore())
	auth := backoffice_client.NewAuthContext(client)

	loginCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	user, err := auth.Login(loginCtx, cfg.Email, cfg.Password)
	cancel()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	defer func() {
		logoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = auth.Logout(logoutCtx)
	}()

	opts := tui.Options{
		DeleteOffer:  client.DeleteOffer,
		DeleteDemand: client.DeleteDemand,
		GetOffer:     client.GetOffer,
		UpdateOffer:  client.UpdateOffer,
		GetDemand:    client.GetDemand,
		UpdateDemand: client.UpdateDemand,
		PageSize:     cfg.PageSize,
		UserName:     fmt.Sprintf("%s (%s)", user.FullName(), user.Role),
	}
	if cfg.Mode == configs.ListModeLoaded {
		opts.Offers = listing.NewLoadedLister(client.FetchAllOffers, listing.OfferDescriptor)
		opts.Demands = listing.NewLoadedLister(client.FetchAllDemands, listing.DemandDescriptor)
		if opts.PageSize <= 0 {
			opts.PageSize = listing.DefaultLoadedPageSize
		}
	} else {
		opts.Offers = backoffice_client.NewOfferLister(client)
		opts.Demands = backoffice_client.NewDemandLister(client)
		if opts.PageSize <= 0 {
			opts.PageSize = listing.DefaultServerPageSize
		}
	}

	p := tea.NewProgram(tui.New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
