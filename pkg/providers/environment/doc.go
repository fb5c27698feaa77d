// Package environment provides environment variables read from a settings
// file.
//
// The file maps environment names to variables:
//
//	$shared:
//	  version: v1
//	local:
//	  host: localhost:8080
//	  base: http://localhost:8080/{{$shared version}}
//	production:
//	  host: api.example.com
//
// JSON is accepted too, including a VS Code settings.json whose environments
// live under "rest-client.environmentVariables". Variables of $shared are
// visible in every environment unless the active one redefines them.
package environment
