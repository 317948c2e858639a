package types

// CatalogConfig holds settings for the catalog stage.
type CatalogConfig struct {
	// OutputPath is the spreadsheet destination. Empty selects
	// [root]/literature_review_YYYYMMDD.xlsx.
	OutputPath string `json:"output_path" yaml:"output_path" mapstructure:"output_path"`

	// KeywordMapPath is an optional category-to-keywords YAML file.
	KeywordMapPath string `json:"keyword_map_path,omitempty" yaml:"keyword_map_path,omitempty" mapstructure:"keyword_map_path"`
}

// ReorganizeConfig holds settings for the reorganization planner and
// executor.
type ReorganizeConfig struct {
	// Strategy selects the reorganization rule.
	Strategy Strategy `json:"strategy" yaml:"strategy" mapstructure:"strategy"`

	// KeywordMapPath is required for the by-keyword strategy.
	KeywordMapPath string `json:"keyword_map_path,omitempty" yaml:"keyword_map_path,omitempty" mapstructure:"keyword_map_path"`

	// MinPapers is the consolidate threshold: folders with fewer PDFs
	// are merged into MiscFolder (default 3).
	MinPapers int `json:"min_papers" yaml:"min_papers" mapstructure:"min_papers"`

	// MiscFolder is the consolidation catch-all folder name
	// (default "Miscellaneous").
	MiscFolder string `json:"misc_folder" yaml:"misc_folder" mapstructure:"misc_folder"`

	// MaxDepth is the flatten strategy's nesting limit (default 2).
	MaxDepth int `json:"max_depth" yaml:"max_depth" mapstructure:"max_depth"`
}

// IndexConfig holds settings for the SQLite catalog index.
type IndexConfig struct {
	// DBPath is the index database file (default "catalog.db" under the
	// scanned root).
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// MaxResults is the default maximum number of search results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}
