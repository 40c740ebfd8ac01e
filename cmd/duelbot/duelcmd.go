/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/duelresult/duel"
	"github.com/mikeb26/duelresult/notify"
	"github.com/mikeb26/duelresult/snapstore"
)

type DuelSubCommand string

const (
	DuelHelpCmd    DuelSubCommand = "help"
	DuelReportCmd  DuelSubCommand = "report"
	DuelSummaryCmd DuelSubCommand = "summary"
)

const helpText = `**/duel report [series] [broadcast]**
Show the report for a stored match series (default series if omitted).

**/duel summary win_first win_second draw_first draw_second lose_first lose_second**
Show the report for literal counts.

Reports are comma separated:
` + "```" + `
total,win,draw,lose,balance-s,balance-g,winrate,R,95%
ev1 @@ is the tracked engine moving first, ev1 [] moving second
` + "```"

// summaryOptions lists the /duel summary count options in report order.
var summaryOptions = []struct {
	name  string
	desc  string
	color duel.Color
}{
	{"win_first", "Wins moving first", duel.First},
	{"win_second", "Wins moving second", duel.Second},
	{"draw_first", "Draws moving first", duel.First},
	{"draw_second", "Draws moving second", duel.Second},
	{"lose_first", "Losses moving first", duel.First},
	{"lose_second", "Losses moving second", duel.Second},
}

func duelCommand() *discordgo.ApplicationCommand {
	broadcastOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}

	var countOpts []*discordgo.ApplicationCommandOption
	for _, o := range summaryOptions {
		countOpts = append(countOpts, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        o.name,
			Description: o.desc,
			Required:    true,
		})
	}
	countOpts = append(countOpts, broadcastOpt)

	return &discordgo.ApplicationCommand{
		Name:        string(DuelCmd),
		Description: "Engine match statistics; try /duel help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(DuelHelpCmd),
				Description: "Show usage for duel",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(DuelReportCmd),
				Description: "Show the report for a match series",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "series",
						Description: "Series name (default is the bot's configured series)",
						Required:    false,
					},
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(DuelSummaryCmd),
				Description: "Show the report for literal counts",
				Options:     countOpts,
			},
		},
	}
}

func (b *bot) duelCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := b.duelHelpCmdHandler
	if len(data.Options) > 0 {
		switch DuelSubCommand(data.Options[0].Name) {
		case DuelReportCmd:
			hdlr = b.duelReportCmdHandler
		case DuelSummaryCmd:
			hdlr = b.duelSummaryCmdHandler
		}
	}
	return hdlr(ctx, inter)
}

func newEphemeralResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

func subOptions(inter *discordgo.Interaction) []*discordgo.ApplicationCommandInteractionDataOption {
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}
	return data.Options[0].Options
}

func (b *bot) duelHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = notify.TruncateContent(helpText)
	return resp
}

func (b *bot) duelReportCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	series := b.series
	broadcast := false // default
	for _, opt := range subOptions(inter) {
		if opt.Name == "series" {
			series = opt.StringValue()
		} else if opt.Name == "broadcast" {
			broadcast = opt.BoolValue()
		}
	}

	snap, err := snapstore.Load(ctx, b.store, series)
	if errors.Is(err, snapstore.ErrNotFound) {
		resp.Data.Content = fmt.Sprintf("No results recorded for series %v.", series)
		log.Printf("duelbot.report: %v", resp.Data.Content)
		return resp
	} else if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading series %v: %v", series, err)
		log.Printf("duelbot.report: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = notify.FormatReport(series, snap.Result().Dump())
	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func (b *bot) duelSummaryCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	values := make(map[string]int64)
	broadcast := false // default
	for _, opt := range subOptions(inter) {
		if opt.Name == "broadcast" {
			broadcast = opt.BoolValue()
		} else {
			values[opt.Name] = opt.IntValue()
		}
	}

	var counts [3]duel.Counts
	for i, o := range summaryOptions {
		v, ok := values[o.name]
		if !ok || v < 0 || v > math.MaxUint32 {
			resp.Data.Content = fmt.Sprintf("Please provide a %v between 0 and %v.",
				o.name, uint32(math.MaxUint32))
			log.Printf("duelbot.summary: %v", resp.Data.Content)
			return resp
		}
		counts[i/2][o.color] = uint32(v)
	}
	win, draw, lose := counts[0], counts[1], counts[2]
	total := win.Sum() + draw.Sum() + lose.Sum()

	resp.Data.Content = notify.FormatReport("summary",
		duel.Summary(win, draw, lose, total))
	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}
