package entities

// BER data source constants
const (
	SourceEMSL    = "EMSL"
	SourceESSDive = "ESS-DIVE"
	SourceJGI     = "JGI"
	SourceNMDC    = "NMDC"
	SourceMONET   = "MONET"
)

// Entity type constants
const (
	TypeBiodata      = "biodata"
	TypeSample       = "sample"
	TypeSequence     = "sequence"
	TypeTaxon        = "taxon"
	TypeJGIBiosample = "jgi_biosample"
)

// SupportedSources lists all known BER data sources.
var SupportedSources = []string{SourceEMSL, SourceESSDive, SourceJGI, SourceNMDC, SourceMONET}

// SupportedEntityTypes lists all known entity types.
var SupportedEntityTypes = []string{TypeBiodata, TypeSample, TypeSequence, TypeTaxon, TypeJGIBiosample}
