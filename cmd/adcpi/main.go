package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/knadh/koanf"
	"github.com/rs/zerolog"

	"github.com/cgxeiji/adcpi"
	"github.com/cgxeiji/adcpi/bus"
)

var (
	// Version is the version number. Typically injected via ldflags.
	Version = "1"

	// ConfigFileName is the default configuration file.
	ConfigFileName = "adcpi.yml"
)

var log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stderr}
	log = zerolog.New(cw).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

func usage() {
	str := `adcpi reads the channels of an ADC Pi board on the I2C bus.

Usage:
	adcpi [flags] <command> [arguments]

Commands:
	read [ch...]   print the voltage of channels (all by default)
	raw [ch...]    print the raw reading of channels (all by default)
	diff <a> <b>   print the voltage of b minus a (differential boards)
	watch [ch...]  sample channels continuously with rolling statistics
	serve          expose the board over HTTP
	detect         print the I2C bus number of this Raspberry Pi
	mkconf         write the effective configuration to the config file
	conf           print the effective configuration
	version        print the version

Flags:`
	fmt.Fprintln(flag.CommandLine.Output(), str)
	flag.PrintDefaults()
}

func main() {
	config := flag.String("config", ConfigFileName, "configuration file")
	debug := flag.Bool("debug", false, "log debug messages")
	trace := flag.Bool("trace", false, "log every bus transaction")
	flag.Usage = usage
	flag.Parse()

	switch {
	case *trace:
		log = log.Level(zerolog.TraceLevel)
	case *debug:
		log = log.Level(zerolog.DebugLevel)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return
	}

	c, err := loadConfig(koanf.New("."), *config)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}

	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "version":
		fmt.Printf("adcpi version %v\n", Version)
		return
	case "conf":
		dumpConfig(os.Stdout, c)
		return
	case "mkconf":
		if err := mkconf(*config, c); err != nil {
			log.Fatal().Err(err).Msg("could not write configuration")
		}
		log.Info().Str("file", *config).Msg("wrote configuration")
		return
	case "detect":
		n, err := bus.DetectBus()
		if err != nil {
			log.Fatal().Err(err).Msg("could not detect bus")
		}
		fmt.Println(n)
		return
	case "read", "raw", "diff", "watch", "serve":
	default:
		usage()
		os.Exit(2)
	}

	b, err := openBoard(c, log, *trace)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open board")
	}
	defer b.Close()

	if err := run(b, c, cmd, args); err != nil {
		b.Close()
		log.Fatal().Err(err).Msgf("%s failed", cmd)
	}
}

func run(b *board, c Config, cmd string, args []string) error {
	switch cmd {
	case "read":
		channels, err := parseChannels(args)
		if err != nil {
			return err
		}
		for _, ch := range channels {
			v, err := b.ReadVoltage(ch)
			if err != nil {
				return err
			}
			fmt.Printf("%d\t%.6f\n", ch, v)
		}
	case "raw":
		channels, err := parseChannels(args)
		if err != nil {
			return err
		}
		for _, ch := range channels {
			raw, negative, err := b.ReadRaw(ch)
			if err != nil {
				return err
			}
			fmt.Printf("%d\t%d\t%v\n", ch, raw, negative)
		}
	case "diff":
		if len(args) != 2 {
			return fmt.Errorf("%w: diff needs two channels", adcpi.ErrInvalidArgument)
		}
		channels, err := parseChannels(args)
		if err != nil {
			return err
		}
		v, err := b.readDifferential(channels[0], channels[1])
		if err != nil {
			return err
		}
		fmt.Printf("%.6f\n", v)
	case "watch":
		channels, err := parseChannels(args)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watch(ctx, os.Stdout, b.reader(), c, channels)
	case "serve":
		s := &server{b: b, log: log}
		log.Info().Str("addr", c.Addr).Msg("now listening for requests")
		if err := http.ListenAndServe(c.Addr, s.routes()); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}
	return nil
}

// parseChannels returns the channels named by args, or every channel when
// args is empty.
func parseChannels(args []string) ([]int, error) {
	if len(args) == 0 {
		channels := make([]int, adcpi.Channels)
		for i := range channels {
			channels[i] = i + 1
		}
		return channels, nil
	}

	channels := make([]int, 0, len(args))
	for _, a := range args {
		ch, err := strconv.Atoi(a)
		if err != nil || ch < 1 || ch > adcpi.Channels {
			return nil, fmt.Errorf("%w: channel %q, it should be 1 to %d", adcpi.ErrInvalidArgument, a, adcpi.Channels)
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

func mkconf(path string, c Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeConfig(f, c); err != nil {
		return errors.Join(err, f.Close())
	}
	return f.Close()
}
