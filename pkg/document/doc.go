// Package document parses .http and .rest request files.
//
// A file holds one or more request blocks separated by lines starting with
// ###. Each block may open with a preamble of comments, metadata and file
// variable definitions:
//
//	@host = api.example.com
//
//	###
//	# @name login
//	POST https://{{host}}/login
//	Content-Type: application/json
//
//	{"user": "{{user}}"}
//
// Metadata lines ("# @key value" or "// @key value") attach to the block;
// "@name" makes the block addressable as a request variable. Definitions of
// the form "@name = value" are file variables.
package document
