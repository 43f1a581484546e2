// Package message picks the personalised line shown once a participant has
// filled the form.
package message

import (
	"slices"

	"TripBot/catalog"
	"TripBot/model"
)

// Facts are the answers the rules look at.
type Facts struct {
	Meals      []string
	Drinks     []string
	Activities []string
	Allergies  []string
	Budget     string
}

func FactsFrom(p model.UserPreferences) Facts {
	return Facts{
		Meals:      p.Selected(model.StepMeals),
		Drinks:     p.Selected(model.StepDrinks),
		Activities: p.Selected(model.StepActivities),
		Allergies:  p.Selected(model.StepAllergies),
		Budget:     p.Value(model.StepBudget),
	}
}

// Rule maps a predicate over the answers to a message.
type Rule struct {
	Name    string
	Match   func(Facts) bool
	Message string
}

// DefaultRules is evaluated top to bottom and the first match wins. Several
// predicates overlap, so the order is part of the behaviour.
var DefaultRules = []Rule{
	{
		Name: "splurge-raclette",
		Match: func(f Facts) bool {
			return f.Budget == catalog.BudgetSplurge && slices.Contains(f.Meals, catalog.MealRaclette)
		},
		Message: "Raclette et budget illimité : on sort le fromage des grands jours 💎🧀",
	},
	{
		Name: "tight-no-chill",
		Match: func(f Facts) bool {
			return f.Budget == catalog.BudgetTight && !slices.Contains(f.Activities, catalog.ActivityChill)
		},
		Message: "Bonnes vacances Mamie 👵",
	},
	{
		Name: "cool-vacation",
		Match: func(f Facts) bool {
			return slices.Contains(f.Activities, catalog.ActivityChill) &&
				slices.Contains(f.Meals, catalog.MealBBQ) &&
				slices.Contains(f.Drinks, catalog.DrinkBeer)
		},
		Message: "Des vacances à la cool 🍻",
	},
	{
		Name: "over-booked",
		Match: func(f Facts) bool {
			return len(f.Meals) >= 5 && len(f.Drinks) >= 5 && len(f.Activities) >= 5
		},
		Message: "Tu veux pas qu'on parte avec un traiteur aussi ? 😅",
	},
	{
		Name: "nothing-picked",
		Match: func(f Facts) bool {
			return len(f.Meals) == 0 && len(f.Drinks) == 0 && len(f.Activities) == 0 && f.Budget == ""
		},
		Message: "T'as coché quoi en fait ? 😂",
	},
	{
		Name: "spare-liver",
		Match: func(f Facts) bool {
			return slices.Contains(f.Drinks, catalog.DrinkRose) &&
				slices.Contains(f.Meals, catalog.MealRaclette) &&
				slices.Contains(f.Drinks, catalog.DrinkJagermeister)
		},
		Message: "Prévois un foie de secours 🍻",
	},
	{
		Name: "many-allergies",
		Match: func(f Facts) bool {
			n := 0
			for _, a := range f.Allergies {
				if a != catalog.AllergyNone {
					n++
				}
			}
			return n >= 4
		},
		Message: "On te prévoit de l'eau et du pain sans gluten, ça ira ? 🫙",
	},
	{
		Name: "boat-tight",
		Match: func(f Facts) bool {
			return f.Budget == catalog.BudgetTight && slices.Contains(f.Activities, catalog.ActivityBoat)
		},
		Message: "Le bateau avec un budget serré ? Tu rameras toi-même 🚣",
	},
	{
		Name: "chill-only",
		Match: func(f Facts) bool {
			return len(f.Activities) == 1 && f.Activities[0] == catalog.ActivityChill
		},
		Message: "Le transat t'attend déjà 😎",
	},
}

// GenericMessages is the fallback pool when no rule matches.
var GenericMessages = []string{
	"Ton profil est enregistré ! À bientôt en Corse ! 🏝️",
	"C'est noté ! Prépare ton maillot 🩱",
	"Merci ! La Corse n'attend plus que toi 🌊",
	"Réponses enregistrées, vivement le départ ✈️",
	"Parfait, on s'occupe du reste ☀️",
}
