package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCategories(t *testing.T) {
	env := newTestEnv(t)
	alice, token := env.newTestUser(t, "alice")
	bob, _ := env.newTestUser(t, "bob")

	env.newCategory(t, alice.ID, "Salary", "income")
	env.newCategory(t, alice.ID, "Food", "expense")
	env.newCategory(t, alice.ID, "Transport", "expense")
	env.newCategory(t, bob.ID, "Rent", "expense")

	w := env.request(t, "GET", "/api/categories?type=expense", token, nil)
	requireStatus(t, w, http.StatusOK)

	var options []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &options))
	require.Len(t, options, 2, "scoped to the caller")
	// ordered by name
	assert.Equal(t, "Food", options[0]["name"])
	assert.Equal(t, "Transport", options[1]["name"])
}

func TestLookupCategories_AbsentOrUnknownTypeIsEmptyArray(t *testing.T) {
	env := newTestEnv(t)
	alice, token := env.newTestUser(t, "alice")
	env.newCategory(t, alice.ID, "Food", "expense")

	for _, path := range []string{"/api/categories", "/api/categories?type=savings"} {
		w := env.request(t, "GET", path, token, nil)
		requireStatus(t, w, http.StatusOK)
		assert.Equal(t, "[]", w.Body.String())
	}
}

func TestListCategories_AllTypes(t *testing.T) {
	env := newTestEnv(t)
	alice, token := env.newTestUser(t, "alice")
	env.newCategory(t, alice.ID, "Salary", "income")
	env.newCategory(t, alice.ID, "Food", "expense")

	w := env.request(t, "GET", "/api/categories/all", token, nil)
	requireStatus(t, w, http.StatusOK)

	cats := decodeData(t, w)["categories"].([]interface{})
	assert.Len(t, cats, 2)
}

func TestCreateCategory_DuplicateRejected(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newTestUser(t, "alice")

	payload := map[string]interface{}{"name": "Food", "type": "expense", "icon": "restaurant"}

	w := env.request(t, "POST", "/api/categories", token, payload)
	requireStatus(t, w, http.StatusOK)

	w = env.request(t, "POST", "/api/categories", token, payload)
	requireStatus(t, w, http.StatusConflict)

	// same name with the other type is a different category
	w = env.request(t, "POST", "/api/categories", token, map[string]interface{}{
		"name": "Food", "type": "income",
	})
	requireStatus(t, w, http.StatusOK)
}

func TestCreateCategory_SameNamePerUser(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.newTestUser(t, "alice")
	_, bobToken := env.newTestUser(t, "bob")

	payload := map[string]interface{}{"name": "Food", "type": "expense"}

	w := env.request(t, "POST", "/api/categories", aliceToken, payload)
	requireStatus(t, w, http.StatusOK)

	// uniqueness is per user, not global
	w = env.request(t, "POST", "/api/categories", bobToken, payload)
	requireStatus(t, w, http.StatusOK)
}

func TestDeleteCategory_BlockedWhileInUse(t *testing.T) {
	env := newTestEnv(t)
	alice, token := env.newTestUser(t, "alice")
	food := env.newCategory(t, alice.ID, "Food", "expense")
	tx := env.newTransaction(t, alice.ID, food.ID, "expense", "10.00", "2025-03-10")

	w := env.request(t, "DELETE", fmt.Sprintf("/api/categories/%d", food.ID), token, nil)
	requireStatus(t, w, http.StatusConflict)

	// once the transaction is gone the category can be deleted
	w = env.request(t, "DELETE", fmt.Sprintf("/api/transactions/%d", tx.ID), token, nil)
	requireStatus(t, w, http.StatusOK)

	w = env.request(t, "DELETE", fmt.Sprintf("/api/categories/%d", food.ID), token, nil)
	requireStatus(t, w, http.StatusOK)
}

func TestDeleteCategory_ForeignIDLooksAbsent(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.newTestUser(t, "alice")
	bob, _ := env.newTestUser(t, "bob")
	bobCat := env.newCategory(t, bob.ID, "Rent", "expense")

	w := env.request(t, "DELETE", fmt.Sprintf("/api/categories/%d", bobCat.ID), aliceToken, nil)
	requireStatus(t, w, http.StatusNotFound)
}
