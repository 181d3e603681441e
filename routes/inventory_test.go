package routes

import (
	"testing"

	"porchlite-server/models"
)

func defaultStaple(id uint, name, category string, qty int) models.DefaultStaple {
	s := models.DefaultStaple{Name: name, Category: category, DefaultQuantity: qty}
	s.ID = id
	return s
}

func customStaple(id uint, name, category string) models.CustomStaple {
	s := models.CustomStaple{PropertyID: 1, Name: name, Category: category, DefaultQuantity: 1}
	s.ID = id
	return s
}

func inventoryItem(name, category string) models.InventoryItem {
	return models.InventoryItem{PropertyID: 1, Name: name, Category: category, Quantity: 2, RestockThreshold: 1}
}

func TestAvailableStaplesHidesTrackedItems(t *testing.T) {
	defaults := []models.DefaultStaple{
		defaultStaple(1, "Toilet Paper", "bathroom", 4),
		defaultStaple(2, "Paper Towels", "kitchen", 2),
		defaultStaple(3, "Coffee", "kitchen", 1),
	}
	inventory := []models.InventoryItem{
		// Case and whitespace differences still count as the same item.
		inventoryItem("  toilet paper ", "Bathroom"),
	}

	options := AvailableStaples(defaults, nil, inventory)
	if len(options) != 2 {
		t.Fatalf("got %d options, want 2: %+v", len(options), options)
	}
	for _, opt := range options {
		if opt.Name == "Toilet Paper" {
			t.Error("tracked staple must be hidden from the available list")
		}
		if opt.IsCustom {
			t.Errorf("default staple %q marked custom", opt.Name)
		}
	}
}

func TestAvailableStaplesCustomAfterDefaults(t *testing.T) {
	defaults := []models.DefaultStaple{defaultStaple(1, "Coffee", "kitchen", 1)}
	customs := []models.CustomStaple{
		customStaple(10, "Firewood", "outdoor"),
		// Duplicate of a default by key; the default wins.
		customStaple(11, "COFFEE", "Kitchen"),
	}

	options := AvailableStaples(defaults, customs, nil)
	if len(options) != 2 {
		t.Fatalf("got %d options, want 2: %+v", len(options), options)
	}
	if options[0].Name != "Coffee" || options[0].IsCustom {
		t.Errorf("options[0] = %+v, want the default Coffee", options[0])
	}
	if options[1].Name != "Firewood" || !options[1].IsCustom || options[1].StapleID != 10 {
		t.Errorf("options[1] = %+v, want custom Firewood with its staple id", options[1])
	}
}

func TestAvailableStaplesSameNameDifferentCategory(t *testing.T) {
	defaults := []models.DefaultStaple{
		defaultStaple(1, "Batteries", "garage", 4),
		defaultStaple(2, "Batteries", "kitchen", 4),
	}
	inventory := []models.InventoryItem{inventoryItem("Batteries", "garage")}

	options := AvailableStaples(defaults, nil, inventory)
	if len(options) != 1 {
		t.Fatalf("got %d options, want 1: %+v", len(options), options)
	}
	if options[0].Category != "kitchen" {
		t.Errorf("remaining option category = %q, want kitchen", options[0].Category)
	}
}

func TestAvailableStaplesEmptyCatalogs(t *testing.T) {
	if got := AvailableStaples(nil, nil, nil); len(got) != 0 {
		t.Errorf("empty catalogs produced %d options", len(got))
	}
}
