package system

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getmockd/httpvars/pkg/variables"
)

// =============================================================================
// Faker Data
// =============================================================================

var (
	fakerFirstNames = []string{"John", "Jane", "Bob", "Alice", "Charlie", "Diana", "Edward", "Fiona", "Grace", "Henry"}
	fakerLastNames  = []string{"Smith", "Doe", "Johnson", "Williams", "Brown", "Davis", "Miller", "Wilson", "Moore", "Taylor"}
	fakerDomains    = []string{"example.com", "example.org", "example.net", "test.dev"}
	fakerCompanies  = []string{"Acme Corp", "Globex Inc", "Initech", "Umbrella Corp", "Stark Industries", "Wayne Enterprises"}
	fakerWords      = []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet"}
	fakerStreets    = []string{"Main St", "Oak Ave", "Elm St", "Park Blvd", "Cedar Ln", "Maple Dr"}
	fakerCities     = []string{"Springfield", "Riverside", "Fairview", "Franklin", "Greenville", "Madison"}
	fakerColors     = []string{"red", "green", "blue", "yellow", "purple", "orange", "black", "white", "teal", "navy"}
	fakerCurrencies = []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "SEK", "NZD", "INR"}
	fakerMIMETypes  = []string{"application/json", "application/xml", "text/plain", "text/html", "text/csv", "image/png", "image/jpeg", "application/pdf"}
	fakerUserAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"curl/8.5.0",
	}
	fakerJobLevels = []string{"Junior", "Senior", "Lead", "Principal", "Staff"}
	fakerJobRoles  = []string{"Engineer", "Designer", "Analyst", "Manager", "Consultant"}
)

// fakerKinds lists the supported $faker.<kind> names.
var fakerKinds = map[string]func(p *Provider) string{
	"uuid":         func(p *Provider) string { return p.guid() },
	"boolean":      func(p *Provider) string { return strconv.FormatBool(p.intN(2) == 1) },
	"firstName":    func(p *Provider) string { return p.pick(fakerFirstNames) },
	"lastName":     func(p *Provider) string { return p.pick(fakerLastNames) },
	"name":         func(p *Provider) string { return p.pick(fakerFirstNames) + " " + p.pick(fakerLastNames) },
	"email":        (*Provider).fakerEmail,
	"phone":        (*Provider).fakerPhone,
	"address":      (*Provider).fakerAddress,
	"company":      func(p *Provider) string { return p.pick(fakerCompanies) },
	"word":         func(p *Provider) string { return p.pick(fakerWords) },
	"sentence":     (*Provider).fakerSentence,
	"color":        func(p *Provider) string { return p.pick(fakerColors) },
	"currencyCode": func(p *Provider) string { return p.pick(fakerCurrencies) },
	"mimeType":     func(p *Provider) string { return p.pick(fakerMIMETypes) },
	"userAgent":    func(p *Provider) string { return p.pick(fakerUserAgents) },
	"jobTitle":     func(p *Provider) string { return p.pick(fakerJobLevels) + " " + p.pick(fakerJobRoles) },
	"ipv4":         (*Provider).fakerIPv4,
	"ipv6":         (*Provider).fakerIPv6,
	"macAddress":   (*Provider).fakerMAC,
	"price":        func(p *Provider) string { return fmt.Sprintf("%d.%02d", p.intN(1000), p.intN(100)) },
}

// FakerKinds returns the supported $faker kinds, sorted.
func FakerKinds() []string {
	kinds := make([]string, 0, len(fakerKinds))
	for k := range fakerKinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func (p *Provider) faker(kind string) variables.Outcome {
	gen, ok := fakerKinds[kind]
	if !ok {
		return variables.Failed(fmt.Errorf("%w: %s%s", ErrUnknownVariable, FakerPrefix, kind))
	}
	return variables.Value(gen(p))
}

func (p *Provider) pick(values []string) string {
	return values[p.intN(len(values))]
}

func (p *Provider) fakerEmail() string {
	return strings.ToLower(p.pick(fakerFirstNames)) + strconv.Itoa(p.intN(1000)) + "@" + p.pick(fakerDomains)
}

func (p *Provider) fakerPhone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", p.intN(900)+100, p.intN(900)+100, p.intN(10000))
}

func (p *Provider) fakerAddress() string {
	return fmt.Sprintf("%d %s, %s %05d", p.intN(9999)+1, p.pick(fakerStreets), p.pick(fakerCities), p.intN(100000))
}

func (p *Provider) fakerSentence() string {
	n := 4 + p.intN(5)
	words := make([]string, n)
	for i := range words {
		words[i] = p.pick(fakerWords)
	}
	s := strings.Join(words, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func (p *Provider) fakerIPv4() string {
	return fmt.Sprintf("%d.%d.%d.%d", p.intN(223)+1, p.intN(256), p.intN(256), p.intN(254)+1)
}

func (p *Provider) fakerIPv6() string {
	groups := make([]string, 8)
	for i := range groups {
		groups[i] = fmt.Sprintf("%x", p.intN(0x10000))
	}
	return strings.Join(groups, ":")
}

func (p *Provider) fakerMAC() string {
	octets := make([]string, 6)
	for i := range octets {
		octets[i] = fmt.Sprintf("%02x", p.intN(256))
	}
	return strings.Join(octets, ":")
}
