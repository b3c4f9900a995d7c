package manifest

var (
	bOutputs = []byte("outputs") // out path -> record json
	bMeta    = []byte("meta")    // run metadata

	kBuiltAt = []byte("built_at")
)
