package model

// brandModels содержит справочник марок и моделей для панели фильтров и формы администратора.
var brandModels = []struct {
	name   string
	models []string
}{
	{name: "Audi", models: []string{"A3", "A4", "A6", "Q3", "Q5", "Q7"}},
	{name: "BMW", models: []string{"1 Series", "3 Series", "5 Series", "X1", "X3", "X5"}},
	{name: "Ford", models: []string{"Fiesta", "Focus", "Kuga", "Mondeo", "Mustang"}},
	{name: "Mercedes-Benz", models: []string{"A-Class", "C-Class", "E-Class", "GLA", "GLC"}},
	{name: "Skoda", models: []string{"Fabia", "Octavia", "Superb", "Kodiaq", "Karoq"}},
	{name: "Tesla", models: []string{"Model 3", "Model S", "Model X", "Model Y"}},
	{name: "Toyota", models: []string{"Yaris", "Corolla", "Camry", "C-HR", "RAV4"}},
	{name: "Volkswagen", models: []string{"Polo", "Golf", "Passat", "Tiguan", "T-Roc"}},
}

var fuelTypes = []string{"Petrol", "Diesel", "Hybrid", "Electric", "LPG"}

// Brands возвращает список марок.
func Brands() []string {
	out := make([]string, 0, len(brandModels))
	for _, b := range brandModels {
		out = append(out, b.name)
	}
	return out
}

// ModelsByBrand возвращает модели марки brand или nil для неизвестной марки.
func ModelsByBrand(brand string) []string {
	for _, b := range brandModels {
		if b.name == brand {
			return append([]string(nil), b.models...)
		}
	}
	return nil
}

// FuelTypes возвращает список типов топлива.
func FuelTypes() []string {
	return append([]string(nil), fuelTypes...)
}
