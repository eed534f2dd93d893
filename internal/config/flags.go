package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

var (
	app = kingpin.New("techmania", "Inspect, convert and score TECHMANIA tracks")

	ConfigFile = app.Flag("config", "Configuration file").Short('c').Envar("TECHMANIA_CONFIG").String()
	Pretty     = app.Flag("pretty", "Force pretty log output").Envar("TECHMANIA_PRETTY").Bool()
	Verbose    = app.Flag("verbose", "Log at debug level").Short('v').Bool()

	Inspect      = app.Command("inspect", "Print track and pattern metadata")
	InspectTrack = Inspect.Arg("track", "Track file").Required().ExistingFile()

	Radar        = app.Command("radar", "Print the radar of every pattern")
	RadarTrack   = Radar.Arg("track", "Track file").Required().ExistingFile()
	RadarPattern = Radar.Flag("pattern", "Only this pattern guid").String()

	Upgrade       = app.Command("upgrade", "Rewrite a track file at the latest version")
	UpgradeTrack  = Upgrade.Arg("track", "Track file").Required().ExistingFile()
	UpgradeOutput = Upgrade.Flag("output", "Write here instead of in place").Short('o').String()

	ImportSM       = app.Command("import-sm", "Convert a StepMania chart")
	ImportSMFile   = ImportSM.Arg("sm", "StepMania .sm file").Required().ExistingFile()
	ImportSMOutput = ImportSM.Arg("out", "Track file to write").Required().String()

	Scan       = app.Command("scan", "Parse every track in a folder")
	ScanFolder = Scan.Arg("folder", "Tracks folder, defaults to the configured one").ExistingDir()

	Records       = app.Command("records", "List records of every pattern in a track")
	RecordsTrack  = Records.Arg("track", "Track file").Required().ExistingFile()
	RecordsExport = Records.Flag("export", "Also export all records to this file").String()
	RecordsImport = Records.Flag("import", "Import a records file first").ExistingFile()
)

func init() {
	app.Version(Version)
	app.HelpFlag.Short('h')
}

// Parse selects the command named in args and fills the flag variables.
func Parse(args []string) (string, error) {
	return app.Parse(args)
}
