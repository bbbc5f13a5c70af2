// Package esios extracts Spanish electricity-market time series from the
// two REST APIs published by REE (api.esios.ree.es): the legacy public
// daily PVPC archive and the token-authenticated per-indicator resource.
package esios

import "fmt"

// SourceKind tells the dispatcher which upstream API shape a payload has.
// It is resolved once, when request URLs are built, and never re-derived
// from URL content downstream.
type SourceKind int

const (
	SourceArchive SourceKind = iota
	SourceIndicator
)

func (k SourceKind) String() string {
	if k == SourceArchive {
		return "esios_public"
	}
	return "esios"
}

// Indicator keys, one per upstream series (plus the derived ones).
const (
	KeyPVPC       = "PVPC"
	KeyInjection  = "INJECTION"
	KeyMAG        = "MAG"
	KeyOMIE       = "OMIE"
	KeyAdjustment = "ADJUSTMENT"
	KeyCO2        = "CO2_EMISSIONS"
	KeyDemand     = "DEMAND"
	KeyRenewables = "RENEWABLES"
	KeyIndexed    = "INDEXED"
	KeyPeriod     = "current_period"
)

// ESIOS numeric indicator ids.
const (
	esiosPVPC             = "1001"
	esiosInjection        = "1739"
	esiosMAG              = "1900"
	esiosOMIE             = "10211"
	esiosMarketAdjustment = "2108"
	esiosCO2              = "570"  // Emisiones CO2 eq. por generación
	esiosDemand           = "1293" // Demanda real
	esiosRenewables       = "10491"
)

// SourceIDLegacy marks records extracted from the public archive, which
// has no indicator id of its own.
const SourceIDLegacy = "legacy"

const pricePrecision = 5

var Tariffs = []string{"2.0TD", "2.0TD (Ceuta/Melilla)"}

// tariffToID maps a tariff name to its field code in the archive payload.
var tariffToID = map[string]string{
	Tariffs[0]: "PCB",
	Tariffs[1]: "CYM",
}

var GeoZones = []string{"Península", "Canarias", "Baleares", "Ceuta", "Melilla", "España"}

const (
	ZonePeninsula  = "Península"
	ZoneNationwide = "España"
)

var geoZoneID2Name = map[int]string{
	3:    "Península", // historical id
	8740: "España",
	8741: "Península",
	8742: "Canarias",
	8743: "Baleares",
	8744: "Ceuta",
	8745: "Melilla",
}

// GeoZoneName resolves an upstream geo id. Unrecognized ids are kept
// under a synthesized name instead of being dropped.
func GeoZoneName(geoID int) string {
	if name, ok := geoZoneID2Name[geoID]; ok {
		return name
	}
	return fmt.Sprintf("Unknown_%d", geoID)
}

// AllIndicators lists every indicator key in catalog order. The order is
// what determines request ordering in the URL builder.
var AllIndicators = []string{
	KeyPVPC,
	KeyInjection,
	KeyMAG,
	KeyOMIE,
	KeyAdjustment,
	KeyIndexed,
	KeyPeriod,
	KeyCO2,
	KeyDemand,
	KeyRenewables,
}

// indicatorToDataID holds the downloadable indicators; derived keys
// (INDEXED, current_period) have no upstream id and are absent.
var indicatorToDataID = map[string]string{
	KeyPVPC:       esiosPVPC,
	KeyInjection:  esiosInjection,
	KeyMAG:        esiosMAG,
	KeyOMIE:       esiosOMIE,
	KeyAdjustment: esiosMarketAdjustment,
	KeyCO2:        esiosCO2,
	KeyDemand:     esiosDemand,
	KeyRenewables: esiosRenewables,
}

var indicatorNames = map[string]string{
	KeyPVPC:       "PVPC T. 2.0TD",
	KeyInjection:  "Precio excedente",
	KeyMAG:        "Ajuste liquidación MAG",
	KeyOMIE:       "Precio OMIE",
	KeyAdjustment: "Ajuste mercado",
	KeyIndexed:    "Tarifa Indexada",
	KeyPeriod:     "Periodo actual",
	KeyCO2:        "Intensidad CO2",
	KeyDemand:     "Demanda Real",
	KeyRenewables: "Generación Renovables",
}

// requiredSeries maps each indicator to the upstream series needed to
// compute it. Plain indicators need only themselves; derived ones fan out.
var requiredSeries = map[string][]string{
	KeyPVPC:       {KeyPVPC},
	KeyInjection:  {KeyInjection},
	KeyMAG:        {KeyMAG},
	KeyOMIE:       {KeyOMIE},
	KeyAdjustment: {KeyAdjustment},
	KeyIndexed:    {KeyPVPC, KeyAdjustment},
	KeyPeriod:     {KeyPVPC},
	KeyCO2:        {KeyCO2},
	KeyDemand:     {KeyDemand},
	KeyRenewables: {KeyRenewables},
}

func IndicatorName(key string) string {
	return indicatorNames[key]
}

const (
	urlPublicResource = "https://api.esios.ree.es/archives/70/download_json?locale=es&date=%s"
	urlTokenResource  = "https://api.esios.ree.es/indicators/%s?start_date=%sT00:00&end_date=%sT23:59"
)

var Attributions = map[SourceKind]string{
	SourceArchive:   "Data retrieved from api.esios.ree.es by REE",
	SourceIndicator: "Data retrieved with API token from api.esios.ree.es by REE",
}
