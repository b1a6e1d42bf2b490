package config

// DefaultConfigName is the configuration file funcheck looks for.
const DefaultConfigName = "funcheck.yaml"

// UnitFileExt is the recognized unit description extension.
const UnitFileExt = ".unit"

// ArchiveFileExt is the recognized multi-unit archive extension.
const ArchiveFileExt = ".txtar"

// DefaultCachePath is where the export cache lives unless configured.
const DefaultCachePath = ".funcheck-cache.db"

// DefaultMaxErrors bounds diagnostic output in one run.
const DefaultMaxErrors = 50
