package main

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/channels"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/internal/scheduler"
	"github.com/AbdulWasayUl/country-explorer/internal/workpool"
	"github.com/AbdulWasayUl/country-explorer/services/country"
	"github.com/AbdulWasayUl/country-explorer/services/detail"
	"github.com/AbdulWasayUl/country-explorer/services/featured"
	"github.com/AbdulWasayUl/country-explorer/services/listing"
	"github.com/urfave/cli/v2"
)

const (
	exitUnavailable = 1
	exitNotFound    = 2
	exitUsage       = 3
)

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"}
}

func countriesCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "countries",
		Usage: "list countries, optionally searched, filtered and sorted",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "name substring"},
			&cli.StringFlag{Name: "region", Usage: "one of Africa, Americas, Asia, Europe, Oceania, Antarctic"},
			&cli.StringFlag{Name: "query", Usage: "listing URL query, e.g. 'search=peru&region=Americas'"},
			&cli.StringFlag{Name: "sort", Value: string(listing.SortByName), Usage: "name, population or region"},
			&cli.BoolFlag{Name: "desc", Usage: "sort descending"},
			&cli.StringFlag{Name: "view", Value: string(listing.ViewGrid), Usage: "grid or list"},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			rawQuery, err := listingQuery(c.String("query"), c.String("search"), c.String("region"))
			if err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}

			ctrl := listing.NewController(e.directory, nil)
			if err := ctrl.SetViewMode(listing.ViewMode(c.String("view"))); err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}
			if err := applySort(ctrl, listing.SortKey(c.String("sort")), c.Bool("desc")); err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}

			if err := ctrl.Mount(c.Context, rawQuery); err != nil {
				return cli.Exit("Could not load countries: "+err.Error(), exitUnavailable)
			}

			view := ctrl.View()
			if c.Bool("json") {
				return writeJSON(c.App.Writer, view.Countries)
			}
			return renderListing(c.App.Writer, view, ctrl.QueryString())
		},
	}
}

// listingQuery merges explicit flags over a raw URL query. An unknown region
// in a flag is an error; the same value in the raw query is ignored, as a
// browser URL would be.
func listingQuery(raw, search, region string) (string, error) {
	v, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return "", fmt.Errorf("invalid --query: %w", err)
	}
	if search != "" {
		v.Set("search", search)
	}
	if region != "" {
		r, ok := country.ParseRegion(region)
		if !ok {
			return "", fmt.Errorf("%w: %q", listing.ErrInvalidRegion, region)
		}
		v.Set("region", string(r))
	}
	return v.Encode(), nil
}

// applySort reaches key/order the way header clicks would.
func applySort(ctrl *listing.Controller, key listing.SortKey, desc bool) error {
	if ctrl.State().SortKey != key {
		if err := ctrl.SortBy(key); err != nil {
			return err
		}
	}
	if desc && ctrl.State().SortOrder == listing.Ascending {
		return ctrl.SortBy(key)
	}
	return nil
}

func countryCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "country",
		Usage:     "show one country with its neighbours",
		ArgsUsage: "CODE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "toggle-favorite", Usage: "add or remove the country from your favorites"},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			if _, ok := e.session.CurrentUser(); ok {
				if err := e.connect(c.Context, false); err != nil {
					return err
				}
			}

			var favs detail.Favorites
			if e.favorites != nil {
				favs = e.favorites
			}
			agg := detail.NewAggregator(e.directory, favs, e.session)

			vm, err := agg.Load(c.Context, c.Args().First())
			switch outcome := detail.Classify(err); outcome {
			case detail.OutcomeReady:
			case detail.OutcomeNotFound:
				return cli.Exit(outcome.Message(), exitNotFound)
			case detail.OutcomeMissingCode:
				return cli.Exit(outcome.Message(), exitUsage)
			default:
				return cli.Exit(outcome.Message(), exitUnavailable)
			}

			if c.Bool("toggle-favorite") {
				if !vm.CanFavorite {
					logger.Warn("Sign in with --token to save favorites.")
				} else if err := agg.ToggleFavorite(c.Context, vm); err != nil {
					logger.Warn("Favorite was not updated.")
				}
			}

			if c.Bool("json") {
				return writeJSON(c.App.Writer, vm)
			}
			return renderDetail(c.App.Writer, vm)
		},
	}
}

func favoritesCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "favorites",
		Usage: "list your favorite countries",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			user, ok := e.session.CurrentUser()
			if !ok {
				return cli.Exit("Sign in with --token to see your favorites.", exitUsage)
			}
			if err := e.connect(c.Context, true); err != nil {
				return err
			}

			records, err := e.favorites.ExpandFavorites(c.Context, user.ID)
			if err != nil {
				return cli.Exit("Could not load favorites: "+err.Error(), exitUnavailable)
			}

			if c.Bool("json") {
				return writeJSON(c.App.Writer, records)
			}
			return renderTable(c.App.Writer, records)
		},
	}
}

func featuredCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "featured",
		Usage: "show the current featured countries",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			if err := e.connect(c.Context, true); err != nil {
				return err
			}

			svc := featured.NewService(e.cfg, e.directory, featured.NewMongoStore(e.mongo, e.cfg))
			records, err := svc.Current(c.Context)
			if err != nil {
				return cli.Exit("Could not load featured countries: "+err.Error(), exitUnavailable)
			}

			if c.Bool("json") {
				return writeJSON(c.App.Writer, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(c.App.Writer, "No featured countries yet. Run the jobs command to rotate them.")
				return nil
			}
			return renderTable(c.App.Writer, listing.Sort(records, listing.SortByName, listing.Ascending))
		},
	}
}

func jobsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "jobs",
		Usage: "run the featured-countries rotation on its schedule until interrupted",
		Action: func(c *cli.Context) error {
			ctx := c.Context
			if err := e.connect(ctx, true); err != nil {
				return err
			}

			chans := channels.New()
			wp := workpool.New(chans, e.cfg.WorkerCount)
			wp.Start(ctx)

			services := []scheduler.SchedulableService{
				featured.NewService(e.cfg, e.directory, featured.NewMongoStore(e.mongo, e.cfg)),
			}

			sch, err := scheduler.New()
			if err != nil {
				return err
			}
			if err := sch.StartJob(ctx, e.cfg.FeaturedCron, chans, services); err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}

			logger.Info("Executing immediate startup rotation.")
			sch.RunImmediateJob(ctx, chans, services)

			<-ctx.Done()
			logger.Info("Received interrupt signal. Shutting down gracefully...")

			sch.Stop()
			wp.Stop()

			logger.Info("Waiting for pending worker jobs to finish...")
			waitTimeout(chans, 30*time.Second)
			logger.Info("All worker jobs finished. Shutdown complete.")
			return nil
		},
	}
}

func waitTimeout(chans *channels.Channels, d time.Duration) {
	done := make(chan struct{})
	go func() {
		chans.WG.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		logger.Warn("Gave up waiting for worker jobs after %s", d)
	}
}
