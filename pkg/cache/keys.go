package cache

// Keyer derives cache keys. Implementations must be deterministic.
type Keyer interface {
	// ViewKey identifies a resolved, laid-out view of a dataset.
	ViewKey(datasetHash string, opts ViewKeyOpts) string

	// ArtifactKey identifies one rendered output of a dataset.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// ViewKeyOpts holds everything besides the dataset that shapes a view.
type ViewKeyOpts struct {
	Scope         string `json:"scope"`
	OptionsHash   string `json:"options_hash"`
	PositionsHash string `json:"positions_hash,omitempty"`
}

// ArtifactKeyOpts holds everything besides the dataset that shapes an
// artifact.
type ArtifactKeyOpts struct {
	Format        string `json:"format"`
	Scope         string `json:"scope"`
	OptionsHash   string `json:"options_hash"`
	PositionsHash string `json:"positions_hash,omitempty"`
}

// DefaultKeyer builds "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ViewKey implements Keyer.
func (DefaultKeyer) ViewKey(datasetHash string, opts ViewKeyOpts) string {
	return hashKey("view", datasetHash, opts.Scope, opts.OptionsHash, opts.PositionsHash)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", datasetHash, opts.Format, opts.Scope, opts.OptionsHash, opts.PositionsHash)
}

var _ Keyer = DefaultKeyer{}
