package catalog

import (
	"time"

	"TripBot/model"
)

// Option ids the message rules look at.
const (
	MealBBQ      = "bbq"
	MealRaclette = "raclette"

	AllergyNone = "none"

	DrinkBeer         = "beer"
	DrinkRose         = "rose"
	DrinkJagermeister = "jagermeister"

	ActivityBoat  = "boat"
	ActivityChill = "chill"

	BudgetTight    = "tight"
	BudgetModerate = "moderate"
	BudgetSplurge  = "splurge"
)

var corsica = time.FixedZone("CEST", 2*60*60)

// Default returns the built-in catalog. Every call builds new slices.
func Default() *Catalog {
	return &Catalog{
		TripDate: time.Date(2025, time.June, 21, 12, 0, 0, 0, corsica),
		Options: map[model.StepName][]model.FormOption{
			model.StepMeals: {
				{ID: MealBBQ, Label: "Barbecue", Emoji: "🔥"},
				{ID: "pasta", Label: "Pâtes", Emoji: "🍝"},
				{ID: "salad", Label: "Salade", Emoji: "🥗"},
				{ID: "pizza", Label: "Pizza", Emoji: "🍕"},
				{ID: MealRaclette, Label: "Raclette", Emoji: "🧀"},
				{ID: "seafood", Label: "Fruits de mer", Emoji: "🦐"},
			},
			model.StepAllergies: {
				{ID: "gluten", Label: "Gluten", Emoji: "🌾"},
				{ID: "lactose", Label: "Lactose", Emoji: "🥛"},
				{ID: "nuts", Label: "Fruits à coque", Emoji: "🥜"},
				{ID: "seafood", Label: "Fruits de mer", Emoji: "🦞"},
				{ID: AllergyNone, Label: "Aucune allergie", Emoji: "✅"},
			},
			model.StepBreakfast: {
				{ID: "croissant", Label: "Croissant", Emoji: "🥐"},
				{ID: "cereal", Label: "Céréales", Emoji: "🥣"},
				{ID: "fruit", Label: "Fruits", Emoji: "🍎"},
				{ID: "yogurt", Label: "Yaourt", Emoji: "🥛"},
				{ID: "bread", Label: "Pain/Tartines", Emoji: "🍞"},
				{ID: "coffee", Label: "Café", Emoji: "☕"},
				{ID: "tea", Label: "Thé", Emoji: "🍵"},
				{ID: "juice", Label: "Jus", Emoji: "🧃"},
			},
			model.StepDrinks: {
				{ID: "water", Label: "Eau", Emoji: "💧"},
				{ID: "soda", Label: "Soda", Emoji: "🥤"},
				{ID: "juice", Label: "Jus", Emoji: "🧃"},
				{ID: DrinkBeer, Label: "Bière", Emoji: "🍺"},
				{ID: "wine", Label: "Vin", Emoji: "🍷"},
				{ID: DrinkRose, Label: "Rosé", Emoji: "🥂"},
				{ID: "cocktail", Label: "Cocktails", Emoji: "🍹"},
				{ID: DrinkJagermeister, Label: "Jägermeister", Emoji: "🥃"},
			},
			model.StepActivities: {
				{ID: "beach", Label: "Plage", Emoji: "🏖️"},
				{ID: "hike", Label: "Randonnée", Emoji: "🥾"},
				{ID: ActivityBoat, Label: "Bateau", Emoji: "🚤"},
				{ID: ActivityChill, Label: "Chill", Emoji: "😎"},
				{ID: "sightseeing", Label: "Visites", Emoji: "🏛️"},
				{ID: "snorkeling", Label: "Snorkeling", Emoji: "🤿"},
			},
			model.StepBudget: {
				{ID: BudgetTight, Label: "Serré", Emoji: "💸"},
				{ID: BudgetModerate, Label: "Modéré", Emoji: "💰"},
				{ID: BudgetSplurge, Label: "On se fait plaisir", Emoji: "💎"},
			},
			model.StepItems: {
				{ID: "sunscreen", Label: "Crème solaire", Emoji: "🧴"},
				{ID: "hat", Label: "Chapeau", Emoji: "👒"},
				{ID: "swimsuit", Label: "Maillot de bain", Emoji: "👙"},
				{ID: "towel", Label: "Serviette", Emoji: "🧖"},
				{ID: "sunglasses", Label: "Lunettes de soleil", Emoji: "🕶️"},
				{ID: "camera", Label: "Appareil photo", Emoji: "📷"},
			},
		},
		Questions: []model.QuestionConfig{
			{StepName: model.StepMeals, Title: "Plats préférés", Emoji: "🍽️", AllowMultiple: true, AllowCustom: true},
			{StepName: model.StepAllergies, Title: "Allergies", Emoji: "⚠️", AllowMultiple: true, AllowCustom: true},
			{StepName: model.StepBreakfast, Title: "Petit-déjeuner", Emoji: "🥐", AllowMultiple: true, AllowCustom: true},
			{StepName: model.StepDrinks, Title: "Boissons", Emoji: "🍹", AllowMultiple: true, AllowCustom: true},
			{StepName: model.StepActivities, Title: "Activités", Emoji: "🏖️", AllowMultiple: true, AllowCustom: true},
			{StepName: model.StepBudget, Title: "Budget", Emoji: "💰", AllowMultiple: false, AllowCustom: false},
			{StepName: model.StepItems, Title: "Objets à prévoir", Emoji: "🎒", AllowMultiple: true, AllowCustom: true},
		},
		Roster: []model.Attendee{
			{Name: "Lucas", StartDate: "21 juin 2025", EndDate: "1 juillet 2025", Transport: "Avion", TransportIcon: "✈️"},
			{Name: "Ghislain", StartDate: "21 juin 2025", EndDate: "1 juillet 2025", Transport: "Avion", TransportIcon: "✈️"},
			{Name: "Jade", StartDate: "21 juin 2025", EndDate: "1 juillet 2025", Transport: "Avion", TransportIcon: "✈️"},
			{Name: "Jacques", StartDate: "21 juin 2025", EndDate: "1 juillet 2025", Transport: "Avion", TransportIcon: "✈️"},
			{Name: "Flaco", StartDate: "21 juin 2025", EndDate: "29 juin 2025", Transport: "Avion", TransportIcon: "✈️"},
			{Name: "Camille", StartDate: "23 juin 2025", EndDate: "28 juin 2025", Transport: "Voiture + ferry", TransportIcon: "🚗🛳️"},
			{Name: "Oscar", StartDate: "23 juin 2025", EndDate: "28 juin 2025", Transport: "Voiture + ferry", TransportIcon: "🚗🛳️"},
			{Name: "Nicolas", StartDate: "23 juin 2025", EndDate: "1 juillet 2025", Transport: "Aller voiture, retour avion", TransportIcon: "🚗✈️"},
		},
	}
}
