// The agent hosts the sidebar engine outside a browser: it loads a DOM
// snapshot, runs the page lifecycle over it, and prints the resulting working
// record. All remote egress runs through the host message worker, exactly as
// it does inside the extension.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/calendar/v3"

	"leedz/config"
	"leedz/infras/jwt"
	"leedz/infras/redis"
	"leedz/internal/hostmsg"
	"leedz/internal/llm"
	"leedz/internal/marketplace"
	"leedz/internal/page"
	"leedz/internal/parser"
	"leedz/internal/share"
	"leedz/internal/state"
	"leedz/internal/store/hostcache"
	"leedz/internal/store/httpstore"
	"leedz/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	pageURL := flag.String("url", "", "URL of the captured page")
	snapshotPath := flag.String("snapshot", "", "path to a DOM snapshot file")
	reload := flag.Bool("reload", false, "discard state and force a full parse")
	shareScreen := flag.Bool("share", false, "open the share screen after the page run")
	flag.Parse()

	if *pageURL == "" || *snapshotPath == "" {
		log.Fatal().Msg("both -url and -snapshot are required")
	}

	file, err := os.Open(*snapshotPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *snapshotPath).Msg("failed to open snapshot")
	}
	defer file.Close()

	doc, err := page.LoadSnapshot(*pageURL, file)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load snapshot")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := redis.New(cfg)
	cache := hostcache.New(redisClient, time.Duration(cfg.Cache.TTL)*time.Second)
	recordStore := httpstore.New(cfg)
	st := state.New(recordStore, cache)

	host := hostmsg.NewClient(startWorker(ctx, cfg))

	registry := parser.NewRegistry()
	registry.Register(parser.NewGmail())
	registry.Register(parser.NewCalendar())
	registry.Register(parser.NewProfile())
	registry.Register(parser.NewDirectory())

	orch := parser.NewOrchestrator(registry, host, st)
	engine := page.NewEngine(st, recordStore, newSidebarHooks(doc, st, orch))

	if err := st.LoadSettings(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to load settings")
	}

	if *reload {
		engine.Reload(ctx)
	} else {
		engine.OnShow(ctx)
	}

	output, err := json.MarshalIndent(st.Snapshot(), "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to render state")
	}

	os.Stdout.Write(output)
	os.Stdout.Write([]byte("\n"))

	if *shareScreen {
		openShareScreen(ctx, cfg, st, cache, host)
	}
}

// openShareScreen bootstraps the share view: trades from the marketplace,
// recipient chips from local friends plus the marketplace user's list.
func openShareScreen(ctx context.Context, cfg *config.Config, st *state.State, cache hostcache.Cache, host *hostmsg.Client) {
	tokens := share.NewTokenSource(cache, host, st.Settings.Email)
	pipeline := share.NewPipeline(cfg, st, jwt.New(cfg), host, host, tokens)

	screen, err := pipeline.Open(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("share screen unavailable")

		return
	}

	output, err := json.MarshalIndent(map[string]any{
		"trades":     screen.Trades,
		"recipients": screen.Recipients.All(),
	}, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to render share screen")
	}

	os.Stdout.Write(output)
	os.Stdout.Write([]byte("\n"))
}

// startWorker builds the bus and runs the single egress worker behind it.
func startWorker(ctx context.Context, cfg *config.Config) *hostmsg.Bus {
	bus := hostmsg.NewBus(16)
	host := &consoleHost{}

	worker := hostmsg.NewWorker(bus, llm.New(cfg), marketplace.New(cfg), host, host, host)
	go worker.Run(ctx)

	return bus
}

// consoleHost stands in for the browser host's mail, calendar and tab
// capabilities when the agent runs from a terminal.
type consoleHost struct{}

func (consoleHost) SendMail(_ context.Context, to, subject, _ string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("mail send requested")

	return nil
}

func (consoleHost) InsertEvent(_ context.Context, event *calendar.Event) error {
	log.Info().Str("summary", event.Summary).Msg("calendar insert requested")

	return nil
}

func (consoleHost) OpenTab(_ context.Context, url string) error {
	log.Info().Str("url", url).Msg("tab open requested")

	return nil
}
