package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/knadh/koanf"

	"github.com/cgxeiji/adcpi"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		c, err := loadConfig(koanf.New("."), filepath.Join(t.TempDir(), "missing.yml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(c, defaultConfig()) {
			t.Errorf("expected defaults, got %+v", c)
		}
	})

	t.Run("FileAndEnvironment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "adcpi.yml")
		yml := "transport: smbus\nbus: \"1\"\nresolution: 14\ngain: 4\naddress_a: 0x6A\npoll_interval: 5ms\n"
		if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("ADCPI_GAIN", "8")
		t.Setenv("ADCPI_DIFFERENTIAL", "true")

		c, err := loadConfig(koanf.New("."), path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := defaultConfig()
		want.Transport = "smbus"
		want.Bus = "1"
		want.Resolution = 14
		want.Gain = 8
		want.AddressA = 0x6A
		want.PollInterval = 5 * time.Millisecond
		want.Differential = true
		if !reflect.DeepEqual(c, want) {
			t.Errorf("unexpected config\n%+v\nwant\n%+v", c, want)
		}
	})

	t.Run("InvalidTransport", func(t *testing.T) {
		t.Setenv("ADCPI_TRANSPORT", "spi")
		_, err := loadConfig(koanf.New("."), filepath.Join(t.TempDir(), "missing.yml"))
		if !errors.Is(err, adcpi.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("InvalidFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "adcpi.yml")
		if err := os.WriteFile(path, []byte("gain: [1"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := loadConfig(koanf.New("."), path); err == nil {
			t.Errorf("expected an error")
		}
	})
}

func TestMkconf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adcpi.yml")
	c := defaultConfig()
	c.Gain = 2
	c.Window = 64

	if err := mkconf(path, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := loadConfig(koanf.New("."), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Errorf("expected the written config back\n%+v\nwant\n%+v", got, c)
	}
}

func TestDumpConfig(t *testing.T) {
	var buf bytes.Buffer
	dumpConfig(&buf, defaultConfig())
	for _, s := range []string{"Transport: (string) (len=6) \"periph\"", "Resolution: (int) 18"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("expected %q in\n%s", s, buf.String())
		}
	}
}

func TestParseChannels(t *testing.T) {
	all, err := parseChannels(nil)
	if err != nil || len(all) != adcpi.Channels || all[0] != 1 || all[7] != 8 {
		t.Errorf("expected every channel, got %v (%v)", all, err)
	}

	got, err := parseChannels([]string{"3", "8"})
	if err != nil || !reflect.DeepEqual(got, []int{3, 8}) {
		t.Errorf("expected [3 8], got %v (%v)", got, err)
	}

	for _, args := range [][]string{{"0"}, {"9"}, {"a"}} {
		if _, err := parseChannels(args); !errors.Is(err, adcpi.ErrInvalidArgument) {
			t.Errorf("%v: expected ErrInvalidArgument, got %v", args, err)
		}
	}
}
