package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/ts-swag/internal/domain"
)

func TestNormalizeZodChain(t *testing.T) {
	src := []byte(`
const createUserSchema = z.object({
  name: z.string().min(1),
  email: z.string().email().describe('Primary email'),
  age: z.number().optional(),
  tags: z.array(z.string()),
});
`)

	decl := &domain.Declaration{
		Name:    "createUserSchema",
		Dialect: domain.DialectZodChain,
		Source:  src,
		Fields: []domain.RawField{
			{Name: "name", Chain: []domain.ChainCall{{Name: "string"}, {Name: "min", Args: []string{"1"}}}},
			{Name: "email", Chain: []domain.ChainCall{{Name: "string"}, {Name: "email"}, {Name: "describe", Args: []string{"'Primary email'"}}}},
			{Name: "age", Chain: []domain.ChainCall{{Name: "number"}, {Name: "optional"}}},
			{Name: "tags", Chain: []domain.ChainCall{{Name: "array", Args: []string{"z.string()"}}}},
		},
	}

	schema := Normalize(decl)
	require.NotNil(t, schema)
	assert.Equal(t, "createUserSchema", schema.Name)
	require.Len(t, schema.Fields, 4)

	name := schema.Fields[0]
	assert.Equal(t, domain.TypeString, name.Type)
	assert.True(t, name.Required)
	require.NotNil(t, name.Minimum)
	assert.Equal(t, float64(1), *name.Minimum)

	email := schema.Fields[1]
	assert.Equal(t, "email", email.Format)
	assert.Equal(t, "Primary email", email.Description)

	age := schema.Fields[2]
	assert.Equal(t, domain.TypeNumber, age.Type)
	assert.False(t, age.Required)

	tags := schema.Fields[3]
	assert.Equal(t, domain.TypeArray, tags.Type)
	require.NotNil(t, tags.Items)
	assert.Equal(t, domain.TypeString, tags.Items.Type)

	assert.Equal(t, []string{"name", "email", "tags"}, schema.RequiredFields())
}

func TestNormalizeJoiChain(t *testing.T) {
	decl := &domain.Declaration{
		Name:    "loginSchema",
		Dialect: domain.DialectJoiChain,
		Source:  []byte(``),
		Fields: []domain.RawField{
			{Name: "username", Chain: []domain.ChainCall{{Name: "string"}, {Name: "min", Args: []string{"3"}}, {Name: "description", Args: []string{"'Account name'"}}}},
			{Name: "roles", Chain: []domain.ChainCall{{Name: "array"}, {Name: "items", Args: []string{"Joi.number()"}}}},
			{Name: "remember", Chain: []domain.ChainCall{{Name: "boolean"}, {Name: "optional"}}},
		},
	}

	schema := Normalize(decl)
	require.NotNil(t, schema)
	require.Len(t, schema.Fields, 3)

	username := schema.Fields[0]
	assert.Equal(t, domain.TypeString, username.Type)
	assert.Equal(t, "Account name", username.Description)
	require.NotNil(t, username.Minimum)
	assert.Equal(t, float64(3), *username.Minimum)
	assert.True(t, username.Required)

	roles := schema.Fields[1]
	assert.Equal(t, domain.TypeArray, roles.Type)
	require.NotNil(t, roles.Items)
	assert.Equal(t, domain.TypeNumber, roles.Items.Type)

	assert.False(t, schema.Fields[2].Required)
}

func TestNormalizeAnnotatedClass(t *testing.T) {
	decl := &domain.Declaration{
		Name:    "CreateUserDto",
		Dialect: domain.DialectAnnotatedClass,
		Source:  []byte(``),
		Fields: []domain.RawField{
			{Name: "name", TypeText: "string", Decorators: []domain.DecoratorCall{{Name: "IsString"}}},
			{Name: "email", TypeText: "string", Decorators: []domain.DecoratorCall{{Name: "IsEmail"}}},
			{
				Name:     "age",
				TypeText: "number",
				Optional: true,
				Decorators: []domain.DecoratorCall{
					{Name: "IsOptional"},
					{Name: "Min", Args: []string{"0"}},
				},
			},
			{
				Name:     "nickname",
				TypeText: "string",
				Decorators: []domain.DecoratorCall{
					{Name: "ApiProperty", Props: map[string]string{"description": "Display name", "required": "false"}},
				},
			},
			{Name: "scores", TypeText: "number[]", Decorators: []domain.DecoratorCall{{Name: "IsArray"}}},
		},
	}

	schema := Normalize(decl)
	require.NotNil(t, schema)
	require.Len(t, schema.Fields, 5)

	assert.Equal(t, domain.TypeString, schema.Fields[0].Type)
	assert.True(t, schema.Fields[0].Required)

	assert.Equal(t, "email", schema.Fields[1].Format)

	age := schema.Fields[2]
	assert.Equal(t, domain.TypeNumber, age.Type)
	assert.False(t, age.Required)
	require.NotNil(t, age.Minimum)
	assert.Equal(t, float64(0), *age.Minimum)

	nickname := schema.Fields[3]
	assert.Equal(t, "Display name", nickname.Description)
	assert.False(t, nickname.Required)

	scores := schema.Fields[4]
	assert.Equal(t, domain.TypeArray, scores.Type)
	require.NotNil(t, scores.Items)
	assert.Equal(t, domain.TypeNumber, scores.Items.Type)
}

func TestNormalizeTypeDecl(t *testing.T) {
	decl := &domain.Declaration{
		Name:    "UserResponse",
		Dialect: domain.DialectTypeDecl,
		Source:  []byte(``),
		Fields: []domain.RawField{
			{Name: "id", TypeText: "string"},
			{Name: "active", TypeText: "boolean"},
			{Name: "tags", TypeText: "string[]", Optional: true},
			{Name: "meta", TypeText: "{ [key: string]: string }"},
			{Name: "friends", TypeText: "Array<number>"},
		},
	}

	schema := Normalize(decl)
	require.NotNil(t, schema)
	require.Len(t, schema.Fields, 5)

	assert.Equal(t, domain.TypeString, schema.Fields[0].Type)
	assert.Equal(t, domain.TypeBoolean, schema.Fields[1].Type)

	tags := schema.Fields[2]
	assert.Equal(t, domain.TypeArray, tags.Type)
	assert.False(t, tags.Required)
	require.NotNil(t, tags.Items)
	assert.Equal(t, domain.TypeString, tags.Items.Type)

	assert.Equal(t, domain.TypeObject, schema.Fields[3].Type)

	friends := schema.Fields[4]
	assert.Equal(t, domain.TypeArray, friends.Type)
	require.NotNil(t, friends.Items)
	assert.Equal(t, domain.TypeNumber, friends.Items.Type)
}

func TestNormalizeEdgeCases(t *testing.T) {
	t.Run("nil declaration", func(t *testing.T) {
		assert.Nil(t, Normalize(nil))
	})

	t.Run("no fields yields empty schema", func(t *testing.T) {
		decl := &domain.Declaration{Name: "emptySchema", Dialect: domain.DialectZodChain, Source: []byte(``)}
		schema := Normalize(decl)
		require.NotNil(t, schema)
		assert.Empty(t, schema.Fields)
	})

	t.Run("unrecognized type token degrades to string", func(t *testing.T) {
		decl := &domain.Declaration{
			Name:    "weirdSchema",
			Dialect: domain.DialectZodChain,
			Source:  []byte(``),
			Fields: []domain.RawField{
				{Name: "blob", Chain: []domain.ChainCall{{Name: "custom"}}},
			},
		}
		schema := Normalize(decl)
		require.Len(t, schema.Fields, 1)
		assert.Equal(t, domain.TypeString, schema.Fields[0].Type)
	})

	t.Run("duplicate field names keep the last", func(t *testing.T) {
		decl := &domain.Declaration{
			Name:    "dupSchema",
			Dialect: domain.DialectTypeDecl,
			Source:  []byte(``),
			Fields: []domain.RawField{
				{Name: "id", TypeText: "string"},
				{Name: "id", TypeText: "number"},
			},
		}
		schema := Normalize(decl)
		require.Len(t, schema.Fields, 1)
		assert.Equal(t, domain.TypeNumber, schema.Fields[0].Type)
	})
}
