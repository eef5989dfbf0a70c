package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/config"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/jobs"

	// Command modules register themselves on import.
	_ "github.com/DragonOfMath/discord-dragon-bot-sub002/commands/casino"
	_ "github.com/DragonOfMath/discord-dragon-bot-sub002/commands/economy"
	_ "github.com/DragonOfMath/discord-dragon-bot-sub002/commands/feeds"
	_ "github.com/DragonOfMath/discord-dragon-bot-sub002/commands/help"
	_ "github.com/DragonOfMath/discord-dragon-bot-sub002/commands/market"
	_ "github.com/DragonOfMath/discord-dragon-bot-sub002/commands/moderation"
	_ "github.com/DragonOfMath/discord-dragon-bot-sub002/commands/pokemon"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	b, err := bot.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("building bot")
	}
	defer b.Close()

	b.Client.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		commands.Dispatch(b, s, m)
	})
	b.Client.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		b.Browsers.HandleReactionAdd(s, r)
	})
	b.Client.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
		b.Browsers.HandleReactionRemove(s, r)
	})

	if err := b.Client.Open(); err != nil {
		log.WithError(err).Fatal("opening discord connection")
	}

	scheduler := jobs.NewScheduler(b)
	if err := scheduler.Start(); err != nil {
		log.WithError(err).Fatal("starting scheduler")
	}
	defer scheduler.Stop()

	log.Info("bot is running, press ctrl+c to exit")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")
}
