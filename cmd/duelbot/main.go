/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikeb26/duelresult/duel"
	"github.com/mikeb26/duelresult/internal"
	"github.com/mikeb26/duelresult/metrics"
	"github.com/mikeb26/duelresult/snapstore"
)

const (
	EnvPubKey = "DUELBOT_PUBKEY"
	EnvToken  = "DUELBOT_TOKEN"
	EnvAppID  = "DUELBOT_APPID"
	EnvCmdID  = "DUELBOT_CMDID"
	EnvConfig = "DUELBOT_CONFIG"
)

type TopLevelCommand string

const (
	DuelCmd TopLevelCommand = "duel"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

type bot struct {
	pubKey ed25519.PublicKey
	store  snapstore.Store
	series string

	topLevelCmdHdlrs map[TopLevelCommand]CmdHandler
}

func newBot(pubKey ed25519.PublicKey, store snapstore.Store,
	series string) *bot {

	b := &bot{
		pubKey: pubKey,
		store:  store,
		series: series,
	}
	b.topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
		DuelCmd: b.duelCmdHandler,
	}

	return b
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.pubKey) {
		log.Printf("duelbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("duelbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("duelbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		name := inter.ApplicationCommandData().Name
		hdlr, ok := b.topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'", name),
				Flags:   discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("duelbot.int: unimplemented interaction type %v", inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("duelbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("duelbot.int: failed to write resp: err:%v", err)
	}
}

// loadSeries is the metrics source; it always reads the stored snapshot so
// scrapes never touch a tally that is being written.
func (b *bot) loadSeries() (*duel.Result, error) {
	snap, err := snapstore.Load(context.Background(), b.store, b.series)
	if err != nil {
		return nil, err
	}
	return snap.Result(), nil
}

func (b *bot) routes(reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/DiscordBot/Interaction", b.interactionHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}

func registerSlashCommands(session *discordgo.Session, appID string,
	cmdID string) {

	cmd := duelCommand()
	if cmdID == "" {
		created, err := session.ApplicationCommandCreate(appID, "", cmd)
		if err != nil {
			log.Printf("duelbot.reg: failed to register %v: %v", cmd.Name, err)
			return
		}
		log.Printf("duelbot.reg: registered %v(cmdID:%v); set %v to skip registration",
			created.Name, created.ID, EnvCmdID)
		return
	}

	updated, err := session.ApplicationCommandEdit(appID, "", cmdID, cmd)
	if err != nil {
		log.Printf("duelbot.reg: failed to update %v: %v", cmd.Name, err)
		return
	}
	log.Printf("duelbot.reg: updated %v(cmdID:%v)", updated.Name, updated.ID)
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	ctx := context.Background()

	pubKeyBytes, err := hex.DecodeString(strings.TrimSpace(os.Getenv(EnvPubKey)))
	if err != nil || len(pubKeyBytes) != ed25519.PublicKeySize {
		log.Fatalf("duelbot.main: %v must hold the application's hex encoded public key",
			EnvPubKey)
	}

	cfg, err := internal.LoadConfig(os.Getenv(EnvConfig))
	if err != nil {
		log.Fatalf("duelbot.main: %v", err)
	}
	// the bot only reports stored series, so an unreachable store is fatal
	// rather than silently answering from an empty one
	store, err := snapstore.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("duelbot.main: %v", err)
	}

	b := newBot(ed25519.PublicKey(pubKeyBytes), store, cfg.Series)

	if token, appID := os.Getenv(EnvToken), os.Getenv(EnvAppID); token != "" && appID != "" {
		session, err := discordgo.New("Bot " + token)
		if err != nil {
			log.Fatalf("duelbot.main: failed to initialize discord client: %v", err)
		}
		session.UserAgent = internal.UserAgent
		go registerSlashCommands(session, appID, os.Getenv(EnvCmdID))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewCollector(cfg.Series, b.loadSeries))

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("duelbot.main: starting server on %v:8080 (series %v)", hostname,
		cfg.Series)

	if err := http.ListenAndServe(":8080", b.routes(reg)); err != nil {
		log.Fatalf("duelbot.main: Serve failed: %v", err)
	}
}
