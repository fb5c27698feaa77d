// Package request provides request variables: values taken from the last
// exchange of a named request in the same document.
//
// A reference has the form
//
//	<name>.(request|response).(body|headers)[.<path>]
//
// For bodies, the path is a JSONPath ($.token), an XPath (//token or
// /root/@id) or * for the whole body. For headers, the path is the header
// name, matched case-insensitively.
//
// Exchanges come from a Store. MemoryStore keeps them for the life of the
// process; FileStore persists them as JSON so they survive between runs.
package request
