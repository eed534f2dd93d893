package profile

import (
	"math"

	"git.lost.host/meutraa/techmania/internal/format"
	"git.lost.host/meutraa/techmania/internal/game"
)

const (
	OptionsFilename  = "options.json"
	OptionsVersionV1 = "1"
	OptionsVersionV2 = "2"
	OptionsVersion   = "3"

	DefaultSkin = "Default"
)

var OptionsRegistry = format.MustRegistry("options",
	format.Entry{Version: OptionsVersionV1, New: func() format.Document { return &OptionsV1{} }},
	format.Entry{Version: OptionsVersionV2, New: func() format.Document { return &OptionsV2{} }},
	format.Entry{Version: OptionsVersion, Latest: true, New: func() format.Document { return &Options{} }},
)

type RulesetChoice int

const (
	RulesetStandard RulesetChoice = iota
	RulesetLegacy
	RulesetCustom
)

func (c RulesetChoice) String() string {
	switch c {
	case RulesetStandard:
		return "Standard"
	case RulesetLegacy:
		return "Legacy"
	case RulesetCustom:
		return "Custom"
	}
	return "Unknown"
}

// Options holds the player's settings.
type Options struct {
	Version string `json:"version"`

	Width       int  `json:"width"`
	Height      int  `json:"height"`
	RefreshRate int  `json:"refreshRate"`
	FullScreen  bool `json:"fullScreen"`
	VSync       bool `json:"vSync"`

	MasterVolumePercent   int `json:"masterVolumePercent"`
	MusicVolumePercent    int `json:"musicVolumePercent"`
	KeysoundVolumePercent int `json:"keysoundVolumePercent"`
	SfxVolumePercent      int `json:"sfxVolumePercent"`
	AudioBufferSize       int `json:"audioBufferSize"`

	Locale     string `json:"locale"`
	NoteSkin   string `json:"noteSkin"`
	VfxSkin    string `json:"vfxSkin"`
	ComboSkin  string `json:"comboSkin"`
	GameUiSkin string `json:"gameUiSkin"`

	ShowLoadingBar     bool `json:"showLoadingBar"`
	ShowFps            bool `json:"showFps"`
	ShowJudgementTally bool `json:"showJudgementTally"`

	TouchOffsetMs          int `json:"touchOffsetMs"`
	TouchLatencyMs         int `json:"touchLatencyMs"`
	KeyboardMouseOffsetMs  int `json:"keyboardMouseOffsetMs"`
	KeyboardMouseLatencyMs int `json:"keyboardMouseLatencyMs"`

	Ruleset   RulesetChoice  `json:"ruleset"`
	Modifiers game.Modifiers `json:"modifiers"`
}

func DefaultOptions() *Options {
	return &Options{
		Version:               OptionsVersion,
		Width:                 1920,
		Height:                1080,
		RefreshRate:           60,
		FullScreen:            true,
		VSync:                 true,
		MasterVolumePercent:   100,
		MusicVolumePercent:    80,
		KeysoundVolumePercent: 100,
		SfxVolumePercent:      100,
		AudioBufferSize:       512,
		Locale:                "en",
		NoteSkin:              DefaultSkin,
		VfxSkin:               DefaultSkin,
		ComboSkin:             DefaultSkin,
		GameUiSkin:            DefaultSkin,
		ShowLoadingBar:        true,
		ShowJudgementTally:    true,
		Ruleset:               RulesetStandard,
	}
}

func (o *Options) FormatVersion() string {
	return o.Version
}

func (o *Options) Upgrade() (format.Document, error) {
	return o, nil
}

// OptionsV1 stores volumes as fractions of full volume.
type OptionsV1 struct {
	Version string `json:"version"`

	Width       int  `json:"width"`
	Height      int  `json:"height"`
	RefreshRate int  `json:"refreshRate"`
	FullScreen  bool `json:"fullScreen"`
	VSync       bool `json:"vSync"`

	MasterVolume    float64 `json:"masterVolume"`
	MusicVolume     float64 `json:"musicVolume"`
	KeysoundVolume  float64 `json:"keysoundVolume"`
	SfxVolume       float64 `json:"sfxVolume"`
	AudioBufferSize int     `json:"audioBufferSize"`

	Locale string `json:"locale"`

	ShowLoadingBar     bool `json:"showLoadingBar"`
	ShowFps            bool `json:"showFps"`
	ShowJudgementTally bool `json:"showJudgementTally"`

	TouchOffsetMs          int `json:"touchOffsetMs"`
	TouchLatencyMs         int `json:"touchLatencyMs"`
	KeyboardMouseOffsetMs  int `json:"keyboardMouseOffsetMs"`
	KeyboardMouseLatencyMs int `json:"keyboardMouseLatencyMs"`

	Ruleset   RulesetChoice  `json:"ruleset"`
	Modifiers game.Modifiers `json:"modifiers"`
}

func (o *OptionsV1) FormatVersion() string {
	return o.Version
}

func (o *OptionsV1) Upgrade() (format.Document, error) {
	return &OptionsV2{
		Version:                OptionsVersionV2,
		Width:                  o.Width,
		Height:                 o.Height,
		RefreshRate:            o.RefreshRate,
		FullScreen:             o.FullScreen,
		VSync:                  o.VSync,
		MasterVolumePercent:    toPercent(o.MasterVolume),
		MusicVolumePercent:     toPercent(o.MusicVolume),
		KeysoundVolumePercent:  toPercent(o.KeysoundVolume),
		SfxVolumePercent:       toPercent(o.SfxVolume),
		AudioBufferSize:        o.AudioBufferSize,
		Locale:                 o.Locale,
		Skin:                   DefaultSkin,
		ShowLoadingBar:         o.ShowLoadingBar,
		ShowFps:                o.ShowFps,
		ShowJudgementTally:     o.ShowJudgementTally,
		TouchOffsetMs:          o.TouchOffsetMs,
		TouchLatencyMs:         o.TouchLatencyMs,
		KeyboardMouseOffsetMs:  o.KeyboardMouseOffsetMs,
		KeyboardMouseLatencyMs: o.KeyboardMouseLatencyMs,
		Ruleset:                o.Ruleset,
		Modifiers:              o.Modifiers,
	}, nil
}

// OptionsV2 has a single skin for every element.
type OptionsV2 struct {
	Version string `json:"version"`

	Width       int  `json:"width"`
	Height      int  `json:"height"`
	RefreshRate int  `json:"refreshRate"`
	FullScreen  bool `json:"fullScreen"`
	VSync       bool `json:"vSync"`

	MasterVolumePercent   int `json:"masterVolumePercent"`
	MusicVolumePercent    int `json:"musicVolumePercent"`
	KeysoundVolumePercent int `json:"keysoundVolumePercent"`
	SfxVolumePercent      int `json:"sfxVolumePercent"`
	AudioBufferSize       int `json:"audioBufferSize"`

	Locale string `json:"locale"`
	Skin   string `json:"skin"`

	ShowLoadingBar     bool `json:"showLoadingBar"`
	ShowFps            bool `json:"showFps"`
	ShowJudgementTally bool `json:"showJudgementTally"`

	TouchOffsetMs          int `json:"touchOffsetMs"`
	TouchLatencyMs         int `json:"touchLatencyMs"`
	KeyboardMouseOffsetMs  int `json:"keyboardMouseOffsetMs"`
	KeyboardMouseLatencyMs int `json:"keyboardMouseLatencyMs"`

	Ruleset   RulesetChoice  `json:"ruleset"`
	Modifiers game.Modifiers `json:"modifiers"`
}

func (o *OptionsV2) FormatVersion() string {
	return o.Version
}

func (o *OptionsV2) Upgrade() (format.Document, error) {
	skin := o.Skin
	if skin == "" {
		skin = DefaultSkin
	}
	return &Options{
		Version:                OptionsVersion,
		Width:                  o.Width,
		Height:                 o.Height,
		RefreshRate:            o.RefreshRate,
		FullScreen:             o.FullScreen,
		VSync:                  o.VSync,
		MasterVolumePercent:    o.MasterVolumePercent,
		MusicVolumePercent:     o.MusicVolumePercent,
		KeysoundVolumePercent:  o.KeysoundVolumePercent,
		SfxVolumePercent:       o.SfxVolumePercent,
		AudioBufferSize:        o.AudioBufferSize,
		Locale:                 o.Locale,
		NoteSkin:               skin,
		VfxSkin:                skin,
		ComboSkin:              skin,
		GameUiSkin:             skin,
		ShowLoadingBar:         o.ShowLoadingBar,
		ShowFps:                o.ShowFps,
		ShowJudgementTally:     o.ShowJudgementTally,
		TouchOffsetMs:          o.TouchOffsetMs,
		TouchLatencyMs:         o.TouchLatencyMs,
		KeyboardMouseOffsetMs:  o.KeyboardMouseOffsetMs,
		KeyboardMouseLatencyMs: o.KeyboardMouseLatencyMs,
		Ruleset:                o.Ruleset,
		Modifiers:              o.Modifiers,
	}, nil
}

func toPercent(f float64) int {
	return int(math.Round(f * 100))
}
