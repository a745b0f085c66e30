package civic

import "fmt"

// Domain names one of the record families this system aggregates. It
// doubles as the key the snapshot store and HTTP routes address data by.
type Domain string

const (
	DomainLegislators       Domain = "legislators"
	DomainLegislatorDetails Domain = "legislator-details"
	DomainLobbying          Domain = "lobbying"
	DomainSpending          Domain = "spending"
	DomainBills             Domain = "bills"
)

func Domains() []Domain {
	return []Domain{
		DomainLegislators,
		DomainLegislatorDetails,
		DomainLobbying,
		DomainSpending,
		DomainBills,
	}
}

func ParseDomain(s string) (Domain, error) {
	for _, d := range Domains() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown domain '%s'", s)
}
