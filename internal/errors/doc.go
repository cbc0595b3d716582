// Package errors provides coded, actionable error messages for the zoodb
// command line and configuration loader.
//
// Each error code maps to a category, a short message and a longer detail:
//
//	err := errors.New("E100").
//	    WithDetail("No zoodb.json found in /srv/zoo").
//	    WithSuggestion("Create zoodb.json or pass --config")
//
//	fmt.Print(err.Format())
//	// ERROR E100: Configuration file not found
//	//
//	//   No zoodb.json found in /srv/zoo
//	//
//	//   Hint: Create zoodb.json or pass --config
//
// Library packages report plain sentinel errors; this package is for the
// edges where a person reads the message.
package errors
