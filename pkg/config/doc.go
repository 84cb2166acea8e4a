// Package config loads the project configuration for efscript.
//
// Configuration lives in dotenv-style KEY=VALUE files. The loader
// resolves relative paths against the repository root so the rest of the
// tool only ever sees absolute paths. The package also provides the
// interactive environment selector used when several .env files exist
// side by side, with the previous choice remembered in a marker file.
package config
