package emulator

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/ezrec/ledseq/io"
)

const (
	STORE_ROM   = "rom"   // Word-addressed Rom.
	STORE_FLASH = "flash" // Byte-addressed window of a serial flash.
)

// Config holds the emulator settings that are not part of the program.
type Config struct {
	// Capacity is the store size in words. Default: ROM_SIZE.
	Capacity int `json:"capacity"`

	// Store selects the program store, STORE_ROM or STORE_FLASH.
	// Default: STORE_ROM.
	Store string `json:"store"`

	// FlashOffset is the byte offset of the program in the flash part.
	// Default: io.FLASH_DEFAULT_OFFSET.
	FlashOffset uint32 `json:"flash_offset"`

	// Ticks is the number of ticks to run. Default: 5000.
	Ticks int `json:"ticks"`

	// FreqMHz is the clock frequency used by the harness. Default: 12.
	FreqMHz float64 `json:"freq_mhz"`

	// Timescale is the waveform time unit. Default: "1 ns".
	Timescale string `json:"timescale"`
}

var timescaleRe = regexp.MustCompile(`^(1|10|100) ?(s|ms|us|ns|ps|fs)$`)

// DefaultConfig returns a Config with the default values.
func DefaultConfig() *Config {
	return &Config{
		Capacity:    ROM_SIZE,
		Store:       STORE_ROM,
		FlashOffset: io.FLASH_DEFAULT_OFFSET,
		Ticks:       5000,
		FreqMHz:     12,
		Timescale:   "1 ns",
	}
}

// LoadConfig loads a Config from a JSON file. Missing fields keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Store != STORE_ROM && c.Store != STORE_FLASH {
		return ErrConfigStore
	}
	if c.Capacity <= 0 {
		return ErrConfigCapacity
	}
	if c.Ticks < 0 {
		return ErrConfigTicks
	}
	if c.FreqMHz <= 0 {
		return ErrConfigFreq
	}
	if !timescaleRe.MatchString(c.Timescale) {
		return ErrConfigTimescale
	}
	return nil
}

// NewStore builds the configured store holding words.
func (c *Config) NewStore(words []uint32) (store io.Store, err error) {
	err = c.Validate()
	if err != nil {
		return
	}

	switch c.Store {
	case STORE_FLASH:
		end := uint64(c.FlashOffset) + uint64(c.Capacity)*io.WORD_BYTES
		if end > 0xffffffff {
			err = io.ErrStoreRange
			return
		}
		var flash *io.Flash
		flash, err = io.NewFlash(c.FlashOffset, uint32(end), words)
		if err == nil {
			store = flash
		}
	default:
		var rom *io.Rom
		rom, err = io.NewRom(words, c.Capacity)
		if err == nil {
			store = rom
		}
	}

	return
}
