package types

// ArgKey names one operator-configurable argument passed through to the
// upload assistant. The set and its order are fixed here; flag emission and
// the arguments section of the config file both follow this order.
type ArgKey string

const (
	ArgTMDB            ArgKey = "tmdb"
	ArgIMDB            ArgKey = "imdb"
	ArgMAL             ArgKey = "mal"
	ArgCategory        ArgKey = "category"
	ArgType            ArgKey = "type"
	ArgSource          ArgKey = "source"
	ArgEdition         ArgKey = "edition"
	ArgResolution      ArgKey = "resolution"
	ArgFreeleech       ArgKey = "freeleech"
	ArgTag             ArgKey = "tag"
	ArgRegion          ArgKey = "region"
	ArgSeason          ArgKey = "season"
	ArgEpisode         ArgKey = "episode"
	ArgDaily           ArgKey = "daily"
	ArgNoDupe          ArgKey = "no_dupe"
	ArgSkipImghost     ArgKey = "skip_imghost"
	ArgPersonalRelease ArgKey = "personalrelease"
)

// argKeyOrder is the declared emission order.
var argKeyOrder = []ArgKey{
	ArgTMDB,
	ArgIMDB,
	ArgMAL,
	ArgCategory,
	ArgType,
	ArgSource,
	ArgEdition,
	ArgResolution,
	ArgFreeleech,
	ArgTag,
	ArgRegion,
	ArgSeason,
	ArgEpisode,
	ArgDaily,
	ArgNoDupe,
	ArgSkipImghost,
	ArgPersonalRelease,
}

var boolArgKeys = map[ArgKey]bool{
	ArgFreeleech:       true,
	ArgDaily:           true,
	ArgNoDupe:          true,
	ArgSkipImghost:     true,
	ArgPersonalRelease: true,
}

// ArgKeys returns the full key set in declared order. The returned slice is
// a copy; callers may reorder it freely.
func ArgKeys() []ArgKey {
	keys := make([]ArgKey, len(argKeyOrder))
	copy(keys, argKeyOrder)
	return keys
}

// IsValidArgKey reports whether name is one of the declared keys.
func IsValidArgKey(name string) bool {
	for _, k := range argKeyOrder {
		if string(k) == name {
			return true
		}
	}
	return false
}

// Bool reports whether the key is a presence flag rather than a valued one.
func (k ArgKey) Bool() bool {
	return boolArgKeys[k]
}

// Flag returns the command-line form of the key.
func (k ArgKey) Flag() string {
	return "--" + string(k)
}
