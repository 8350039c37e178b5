package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestProjectFilterBSON(t *testing.T) {
	t.Run("empty filter adds no criteria", func(t *testing.T) {
		assert.Empty(t, ProjectFilter{}.BSON())
	})

	t.Run("list dimensions become $in", func(t *testing.T) {
		f := ProjectFilter{
			ProjectTypes: []string{"Villa", "Apartment"},
			Styles:       []string{"Modern"},
		}
		filter := f.BSON()

		assert.Equal(t, bson.M{"$in": []string{"Villa", "Apartment"}}, filter["project_type"])
		assert.Equal(t, bson.M{"$in": []string{"Modern"}}, filter["style"])
	})

	t.Run("ranges become $gte/$lte", func(t *testing.T) {
		min, max := 500.0, 2000.0
		filter := ProjectFilter{MinArea: &min, MaxArea: &max}.BSON()
		assert.Equal(t, bson.M{"$gte": 500.0, "$lte": 2000.0}, filter["area_square_feet"])

		filter = ProjectFilter{MinCost: &min}.BSON()
		assert.Equal(t, bson.M{"$gte": 500.0}, filter["cost"])
	})

	t.Run("bool dimensions only when set", func(t *testing.T) {
		yes := true
		filter := ProjectFilter{BoundaryWall: &yes}.BSON()
		assert.Equal(t, true, filter["boundary_wall"])
		_, hasCorner := filter["corner_property"]
		assert.False(t, hasCorner)
	})

	t.Run("free text query fans out over the fuzzy fields", func(t *testing.T) {
		filter := ProjectFilter{Query: "villa"}.BSON()
		or, ok := filter["$or"].(bson.A)
		require.True(t, ok)
		assert.Len(t, or, len(projectFuzzyFields))
	})

	t.Run("location filters the nested place field", func(t *testing.T) {
		filter := ProjectFilter{Locations: []string{"Kochi"}}.BSON()
		assert.Equal(t, bson.M{"$in": []string{"Kochi"}}, filter["project_location.place"])
	})
}

func TestUserFilterBSON(t *testing.T) {
	filter := UserFilter{Roles: []string{"Realtor"}, Types: []string{"Architect"}}.BSON()
	assert.Equal(t, bson.M{"$in": []string{"Realtor"}}, filter["role"])
	assert.Equal(t, bson.M{"$in": []string{"Architect"}}, filter["type"])

	assert.Empty(t, UserFilter{}.BSON())
}
