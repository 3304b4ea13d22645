package testdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func validScenario() Scenario {
	return Scenario{
		UserEmail:        "shopper@example.com",
		Password:         "secret",
		MenuName:         "Shop",
		SubMenuName:      "Bodysuits",
		SortBy:           "Newest",
		ProductName:      "Emerson Bodysuit",
		Email:            "shopper@example.com",
		LastName:         "Tanaka",
		FirstName:        "Yui",
		PostalCode:       "181-0011",
		Phone:            "9012345678",
		PhoneCountryCode: "JP",
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFixture(t, "shopping.json", `{
  "data": [
    {
      "userEmail": "shopper@example.com",
      "passWord": "secret",
      "menuName": "Shop",
      "subMenuName": "Bodysuits",
      "sortBy": "Newest",
      "productName": "Emerson Bodysuit",
      "email": "shopper@example.com",
      "lastName": "Tanaka",
      "firstName": "Yui",
      "postalCode": "181-0011",
      "phone": "9012345678",
      "phone_country_select": "JP",
      "size": "M"
    }
  ]
}`)

	scenarios, err := Load(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)

	s := scenarios[0]
	assert.Equal(t, "Emerson Bodysuit", s.ProductName)
	assert.Equal(t, "shopper@example.com", s.UserEmail)
	assert.Equal(t, "JP", s.PhoneCountryCode)
	assert.Equal(t, "M", s.Size)
	assert.NoError(t, s.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFixture(t, "shopping.yaml", `
data:
  - userEmail: shopper@example.com
    passWord: secret
    menuName: Shop
    subMenuName: Bodysuits
    sortBy: Newest
    productName: Emerson Bodysuit
    email: shopper@example.com
    lastName: Tanaka
    firstName: Yui
    postalCode: "181-0011"
    phone: "9012345678"
    phone_country_select: JP
`)

	scenarios, err := Load(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "Emerson Bodysuit", scenarios[0].ProductName)
	assert.NoError(t, scenarios[0].Validate())
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := writeFixture(t, "bad.json", `{"data": [`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "invalid JSON")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFixture(t, "data.toml", `data = []`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "unsupported test data format")
	})

	t.Run("empty data list", func(t *testing.T) {
		path := writeFixture(t, "empty.json", `{"data": []}`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "no scenarios")
	})
}

func TestLoadCredentialEnvOverrides(t *testing.T) {
	path := writeFixture(t, "shopping.json", `{
  "data": [
    {"userEmail": "committed@example.com", "passWord": "committed", "productName": "Emerson Bodysuit"},
    {"userEmail": "committed@example.com", "passWord": "committed", "productName": "Karolina Bra"}
  ]
}`)

	t.Setenv(EnvUserEmail, "ci@example.com")
	t.Setenv(EnvPassword, "ci-secret")

	scenarios, err := Load(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	for _, s := range scenarios {
		assert.Equal(t, "ci@example.com", s.UserEmail)
		assert.Equal(t, "ci-secret", s.Password)
	}

	// Other fields are untouched
	assert.Equal(t, "Emerson Bodysuit", scenarios[0].ProductName)
}

func TestValidateNamesMissingFields(t *testing.T) {
	s := validScenario()
	s.Password = ""
	s.Phone = ""

	err := s.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "passWord")
	assert.ErrorContains(t, err, "phone")
	assert.NotContains(t, err.Error(), "userEmail")
}

func TestScenarioID(t *testing.T) {
	s := validScenario()
	assert.Equal(t, "Emerson_Bodysuit", s.ID())

	assert.Equal(t, "unnamed-scenario", Scenario{}.ID())
}

func TestFilter(t *testing.T) {
	scenarios := []Scenario{
		{ProductName: "Emerson Bodysuit"},
		{ProductName: "Karolina Bra"},
		{ProductName: "Emerson Thong"},
	}

	t.Run("empty pattern keeps all", func(t *testing.T) {
		got, err := Filter(scenarios, "")
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("glob matches subset", func(t *testing.T) {
		got, err := Filter(scenarios, "Emerson*")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Emerson Bodysuit", got[0].ProductName)
		assert.Equal(t, "Emerson Thong", got[1].ProductName)
	})

	t.Run("invalid pattern errors", func(t *testing.T) {
		_, err := Filter(scenarios, "[")
		assert.Error(t, err)
	})
}
