package dname

import (
	"crypto/x509/pkix"
	"strings"
)

// Name is a flattened certificate distinguished name.
// Multi-valued attributes are joined with "+", the first value wins otherwise.
type Name struct {
	Country            string
	State              string
	Locality           string
	Organization       string
	OrganizationalUnit string
	CommonName         string
}

func FromPKIX(n pkix.Name) Name {
	return Name{
		Country:            join(n.Country),
		State:              join(n.Province),
		Locality:           join(n.Locality),
		Organization:       join(n.Organization),
		OrganizationalUnit: join(n.OrganizationalUnit),
		CommonName:         n.CommonName,
	}
}

func (n Name) IsZero() bool {
	return n == Name{}
}

// String renders the name in the "C=US, O=Example, CN=example.com" form.
func (n Name) String() string {
	parts := make([]string, 0, 6)
	for _, attr := range []struct {
		key   string
		value string
	}{
		{"C", n.Country},
		{"ST", n.State},
		{"L", n.Locality},
		{"O", n.Organization},
		{"OU", n.OrganizationalUnit},
		{"CN", n.CommonName},
	} {
		if attr.value == "" {
			continue
		}
		parts = append(parts, attr.key+"="+attr.value)
	}
	return strings.Join(parts, ", ")
}

func join(values []string) string {
	return strings.Join(values, "+")
}
