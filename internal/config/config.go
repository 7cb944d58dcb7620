package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "agenda.db"

	appDirName = "agenda"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	Edit      string `toml:"edit"`
	Toggle    string `toml:"toggle"`
	Delete    string `toml:"delete"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
	PrevDay   string `toml:"prev_day"`
	NextDay   string `toml:"next_day"`
	PrevMonth string `toml:"prev_month"`
	NextMonth string `toml:"next_month"`
	Today     string `toml:"today"`
	Filter    string `toml:"filter"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	DefaultFilter string `toml:"default_filter"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath places the config under the user config dir,
// falling back to the working directory when that is unavailable.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(path), DefaultDBName)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		DBPath:        filepath.Join(dir, DefaultDBName),
		DefaultFilter: "all",
		Keys: Keymap{
			Quit:      "q",
			Add:       "a",
			Edit:      "e",
			Toggle:    " ",
			Delete:    "d",
			Up:        "k",
			Down:      "j",
			Confirm:   "enter",
			Cancel:    "esc",
			PrevDay:   "left",
			NextDay:   "right",
			PrevMonth: "[",
			NextMonth: "]",
			Today:     "t",
			Filter:    "f",
		},
	}
}
