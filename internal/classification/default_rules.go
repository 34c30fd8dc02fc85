package classification

import "github.com/anoushkasinn/Spend.Sense/internal/model"

// DefaultRules returns the built-in keyword rules. Priorities reproduce the
// category order food, transport, shopping, entertainment, health,
// education, bills.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: model.CategoryFood,
			Priority: 70,
			Keywords: []string{
				"restaurant", "cafe", "coffee", "pizza", "burger", "food", "meal",
				"lunch", "dinner", "breakfast", "biryani", "dosa", "thali",
				"zomato", "swiggy",
			},
		},
		{
			Category: model.CategoryTransport,
			Priority: 60,
			Keywords: []string{
				"uber", "ola", "cab", "taxi", "metro", "bus", "train",
				"petrol", "diesel", "fuel", "parking",
			},
		},
		{
			Category: model.CategoryShopping,
			Priority: 50,
			Keywords: []string{
				"amazon", "flipkart", "myntra", "store", "mall", "shop",
				"mart", "retail", "clothes",
			},
		},
		{
			Category: model.CategoryEntertainment,
			Priority: 40,
			Keywords: []string{
				"movie", "cinema", "pvr", "inox", "netflix", "spotify",
				"game", "ticket",
			},
		},
		{
			Category: model.CategoryHealth,
			Priority: 30,
			Keywords: []string{
				"pharmacy", "medical", "hospital", "doctor", "medicine",
				"apollo", "chemist",
			},
		},
		{
			Category: model.CategoryEducation,
			Priority: 20,
			Keywords: []string{
				"book", "course", "udemy", "exam", "tuition", "school", "college",
			},
		},
		{
			Category: model.CategoryBills,
			Priority: 10,
			Keywords: []string{
				"electricity", "water", "internet", "mobile", "recharge",
				"jio", "airtel", "vodafone",
			},
		},
	}
}
