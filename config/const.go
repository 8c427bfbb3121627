package config

// AppVersion is the version of the tool, set at build time.
var AppVersion = "dev"

// AppName is the name of the tool.
const AppName = "Carver"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogExt is the extension for the log files.
var LogExt = ".log"

// ConfigFileName is the name of the JSON settings file inside the user directory.
const ConfigFileName = "config.json"
