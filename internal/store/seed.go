package store

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"billpay-settlement/internal/model"
)

type dataPlan struct {
	size     string
	period   string
	price    int64
	validity string
}

var networkNames = map[string]string{
	"MTN":     "MTN",
	"AIRTEL":  "Airtel",
	"GLO":     "GLO",
	"9MOBILE": "9mobile",
}

var seedDataPlans = []struct {
	network string
	plans   []dataPlan
}{
	{"MTN", []dataPlan{
		{"1GB", "DAILY", 500, "1 day"},
		{"1GB", "WEEKLY", 800, "7 days"},
		{"2GB", "MONTHLY", 1500, "30 days"},
		{"6GB", "WEEKLY", 2500, "7 days"},
		{"7GB", "MONTHLY", 3500, "30 days"},
		{"100GB", "MONTHLY", 20000, "30 days"},
	}},
	{"AIRTEL", []dataPlan{
		{"1GB", "DAILY", 300, "1 day"},
		{"1GB", "WEEKLY", 800, "7 days"},
		{"2GB", "MONTHLY", 1500, "30 days"},
		{"3.5GB", "WEEKLY", 1500, "7 days"},
		{"8GB", "MONTHLY", 3000, "30 days"},
		{"60GB", "MONTHLY", 15000, "30 days"},
		{"100GB", "MONTHLY", 20000, "30 days"},
	}},
	{"GLO", []dataPlan{
		{"1GB", "DAILY", 350, "1 day"},
		{"2GB", "DAILY", 500, "1 day"},
		{"7GB", "WEEKLY", 1500, "7 days"},
		{"2.6GB", "MONTHLY", 1000, "30 days"},
		{"10GB", "MONTHLY", 2500, "30 days"},
		{"50GB", "MONTHLY", 10000, "30 days"},
		{"107GB", "MONTHLY", 20000, "30 days"},
	}},
	{"9MOBILE", []dataPlan{
		{"1GB", "DAILY", 300, "1 day"},
		{"7GB", "WEEKLY", 1500, "7 days"},
		{"2GB", "MONTHLY", 1000, "30 days"},
		{"4.5GB", "MONTHLY", 2000, "30 days"},
		{"11GB", "MONTHLY", 4000, "30 days"},
	}},
}

var seedCablePackages = []struct {
	provider string
	packages []struct {
		name  string
		price int64
	}
}{
	{"DStv", []struct {
		name  string
		price int64
	}{{"Padi", 3600}, {"Yanga", 5100}, {"Confam", 9300}, {"Compact", 15700}, {"Compact Plus", 25000}, {"Premium", 37000}}},
	{"GOtv", []struct {
		name  string
		price int64
	}{{"Smallie", 1200}, {"Jinja", 3300}, {"Jolli", 4850}, {"Max", 7200}, {"Supa", 9600}, {"Supa+", 15700}}},
	{"StarTimes", []struct {
		name  string
		price int64
	}{{"Nova", 1500}, {"Basic", 2500}, {"Smart", 3500}, {"Classic", 5500}, {"Super", 8000}}},
}

var seedDiscos = []struct {
	code string
	name string
}{
	{"AEDC", "Abuja Electricity Distribution Company"},
	{"EKEDC", "Eko Electricity Distribution Company"},
	{"IKEDC", "Ikeja Electric"},
	{"IBEDC", "Ibadan Electricity Distribution Company"},
	{"EEDC", "Enugu Electricity Distribution Company"},
	{"PHED", "Port Harcourt Electricity Distribution Company"},
	{"JED", "Jos Electricity Distribution Company"},
	{"KAEDCO", "Kaduna Electric"},
	{"KEDCO", "Kano Electricity Distribution Company"},
	{"BEDC", "Benin Electricity Distribution Company"},
	{"YEDC", "Yola Electricity Distribution Company"},
}

// DefaultCatalog returns the products sold out of the box.
// Operator ids are left unresolved for the synchronizer to fill.
func DefaultCatalog() model.Catalog {
	catalog := make(model.Catalog)

	for _, network := range []string{"MTN", "GLO", "AIRTEL", "9MOBILE"} {
		catalog[model.CategoryAirtime] = append(catalog[model.CategoryAirtime], model.Product{
			Category:   model.CategoryAirtime,
			ProductKey: network,
			Name:       networkNames[network] + " Airtime",
			Network:    network,
		})
	}

	for _, n := range seedDataPlans {
		for _, plan := range n.plans {
			base := decimal.NewFromInt(plan.price)
			catalog[model.CategoryData] = append(catalog[model.CategoryData], model.Product{
				Category:   model.CategoryData,
				ProductKey: fmt.Sprintf("%s-%s-%s", n.network, plan.size, plan.period),
				Name:       fmt.Sprintf("%s %s %s", networkNames[n.network], plan.size, titleCase(plan.period)),
				BasePrice:  &base,
				Network:    n.network,
				Validity:   plan.validity,
			})
		}
	}

	for _, c := range seedCablePackages {
		for _, pkg := range c.packages {
			base := decimal.NewFromInt(pkg.price)
			key := strings.ToUpper(c.provider + "-" + strings.ReplaceAll(strings.ReplaceAll(pkg.name, "+", "-PLUS"), " ", "-"))
			catalog[model.CategoryCableTV] = append(catalog[model.CategoryCableTV], model.Product{
				Category:   model.CategoryCableTV,
				ProductKey: key,
				Name:       c.provider + " " + pkg.name,
				BasePrice:  &base,
				Provider:   c.provider,
			})
		}
	}

	for _, d := range seedDiscos {
		for _, serviceType := range []string{"prepaid", "postpaid"} {
			catalog[model.CategoryElectricity] = append(catalog[model.CategoryElectricity], model.Product{
				Category:    model.CategoryElectricity,
				ProductKey:  d.code + "-" + strings.ToUpper(serviceType),
				Name:        d.code + " " + titleCase(serviceType),
				Disco:       d.code,
				DiscoName:   d.name,
				ServiceType: serviceType,
			})
		}
	}

	return catalog
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
