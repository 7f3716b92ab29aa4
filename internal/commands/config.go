package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/createmusic-space/musicgen/internal/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	cConfigMusicURL      = "music_api_url"
	cConfigChatURL       = "chat_api_url"
	cConfigChatBackend   = "chat_backend"
	cConfigChatModel     = "chat_model"
	cConfigOpenAIKey     = "openai_api_key"
	cConfigOpenAIBaseURL = "openai_base_url"
	cConfigGeminiKey     = "gemini_api_key"
	cConfigTimeout       = "timeout_seconds"
)

var flagKeys = map[string]string{
	"music-url": cConfigMusicURL,
	"chat-url":  cConfigChatURL,
	"backend":   cConfigChatBackend,
	"model":     cConfigChatModel,
	"timeout":   cConfigTimeout,
}

// cliConfig is the resolved configuration of one CLI invocation
type cliConfig struct {
	MusicAPIURL   string
	ChatAPIURL    string
	ChatBackend   string
	ChatModel     string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string
	Timeout       time.Duration
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for flag, key := range flagKeys {
		// BindPFlag only fails for a nil flag
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
}

// initConfig layers flags over MUSICGEN_* variables over musicgen.yaml over the server's env defaults
func initConfig(v *viper.Viper, cfgFile string, stderr io.Writer) error {
	base := config.Load()
	v.SetDefault(cConfigMusicURL, base.MusicAPIURL)
	v.SetDefault(cConfigChatURL, base.ChatAPIURL)
	v.SetDefault(cConfigChatBackend, base.ChatBackend)
	v.SetDefault(cConfigChatModel, base.ChatModel)
	v.SetDefault(cConfigOpenAIKey, base.OpenAIAPIKey)
	v.SetDefault(cConfigOpenAIBaseURL, base.OpenAIBaseURL)
	v.SetDefault(cConfigGeminiKey, base.GeminiAPIKey)
	v.SetDefault(cConfigTimeout, int(base.RequestTimeout.Seconds()))

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("musicgen")
	}

	v.SetEnvPrefix("MUSICGEN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("failed to read config: %w", err)
		}
		return nil
	}
	_, _ = fmt.Fprintf(stderr, "Using config file: %s\n", v.ConfigFileUsed())
	return nil
}

func resolveConfig(v *viper.Viper) cliConfig {
	// An explicit --timeout 0 falls back to the server default
	timeout := v.GetInt(cConfigTimeout)
	if timeout <= 0 {
		timeout = int(config.Load().RequestTimeout.Seconds())
	}
	return cliConfig{
		MusicAPIURL:   v.GetString(cConfigMusicURL),
		ChatAPIURL:    v.GetString(cConfigChatURL),
		ChatBackend:   v.GetString(cConfigChatBackend),
		ChatModel:     v.GetString(cConfigChatModel),
		OpenAIAPIKey:  v.GetString(cConfigOpenAIKey),
		OpenAIBaseURL: v.GetString(cConfigOpenAIBaseURL),
		GeminiAPIKey:  v.GetString(cConfigGeminiKey),
		Timeout:       time.Duration(timeout) * time.Second,
	}
}
