package config

//go:generate go tool mockgen -destination=mock_test.go -package=$GOPACKAGE github.com/RMF112018/Project-Controls-sub011/$GOPACKAGE IServiceConfiguration

// IServiceConfiguration defines a configuration which can check its own entries.
type IServiceConfiguration interface {
	// Validate validates configuration entries.
	Validate() error
}

// Validator is any structure which can be validated.
type Validator = IServiceConfiguration
