package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/ts-swag/internal/parser/declaration"
)

func writeFixture(t *testing.T, dir, name, src string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	return path
}

func newResolver() *Resolver {
	return New(declaration.NewService())
}

func TestResolveLocal(t *testing.T) {
	dir := t.TempDir()
	file := writeFixture(t, dir, "user.ts", `
import { z } from 'zod';
export const userSchema = z.object({
  id: z.string(),
  age: z.number().optional(),
});
`)

	schema := newResolver().Resolve(context.Background(), "userSchema", file)
	require.NotNil(t, schema)
	assert.Equal(t, "userSchema", schema.Name)
	require.Len(t, schema.Fields, 2)
	assert.Equal(t, []string{"id"}, schema.RequiredFields())
}

func TestResolveAcrossImport(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "schemas/user.ts", `
import { z } from 'zod';
export const createUserSchema = z.object({ name: z.string() });
`)
	routes := writeFixture(t, dir, "routes.ts", `
import { createUserSchema } from './schemas/user';
`)

	schema := newResolver().Resolve(context.Background(), "createUserSchema", routes)
	require.NotNil(t, schema)
	assert.Equal(t, "createUserSchema", schema.Name)
	require.Len(t, schema.Fields, 1)
	assert.Equal(t, "name", schema.Fields[0].Name)
}

func TestResolveIndexFileImport(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "schemas/index.ts", `
import { z } from 'zod';
export const orderSchema = z.object({ total: z.number() });
`)
	routes := writeFixture(t, dir, "routes.ts", `
import { orderSchema } from './schemas';
`)

	schema := newResolver().Resolve(context.Background(), "orderSchema", routes)
	require.NotNil(t, schema)
	assert.Equal(t, "orderSchema", schema.Name)
}

func TestResolveNamingFallbacks(t *testing.T) {
	t.Run("response type bridges to schema binding", func(t *testing.T) {
		dir := t.TempDir()
		file := writeFixture(t, dir, "user.ts", `
import { z } from 'zod';
export const userSchema = z.object({ id: z.string() });
export type UserResponse = z.infer<typeof userSchema>;
`)

		schema := newResolver().Resolve(context.Background(), "UserResponse", file)
		require.NotNil(t, schema)
		assert.Equal(t, "userSchema", schema.Name)
	})

	t.Run("prefixed interface name bridges to schema binding", func(t *testing.T) {
		dir := t.TempDir()
		file := writeFixture(t, dir, "user.ts", `
import { z } from 'zod';
export const UserSchema = z.object({ id: z.string() });
`)

		schema := newResolver().Resolve(context.Background(), "IUser", file)
		require.NotNil(t, schema)
		assert.Equal(t, "UserSchema", schema.Name)
	})

	t.Run("fallback follows imports too", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, "schemas.ts", `
import { z } from 'zod';
export const orderSchema = z.object({ total: z.number() });
`)
		routes := writeFixture(t, dir, "routes.ts", `
import { orderSchema } from './schemas';
`)

		schema := newResolver().Resolve(context.Background(), "Order", routes)
		require.NotNil(t, schema)
		assert.Equal(t, "orderSchema", schema.Name)
	})

	t.Run("declared type wins over derived names", func(t *testing.T) {
		dir := t.TempDir()
		file := writeFixture(t, dir, "user.ts", `
import { z } from 'zod';
export const userSchema = z.object({ id: z.string() });
export interface User { id: string; name: string }
`)

		schema := newResolver().Resolve(context.Background(), "User", file)
		require.NotNil(t, schema)
		assert.Equal(t, "User", schema.Name)
		assert.Len(t, schema.Fields, 2)
	})
}

func TestResolveAbsent(t *testing.T) {
	dir := t.TempDir()
	file := writeFixture(t, dir, "empty.ts", `export const other = 1;`)

	schema := newResolver().Resolve(context.Background(), "missingSchema", file)
	assert.Nil(t, schema)
}

func TestResolveUnreadableFile(t *testing.T) {
	dir := t.TempDir()

	schema := newResolver().Resolve(context.Background(), "anySchema", filepath.Join(dir, "missing.ts"))
	assert.Nil(t, schema)
}

func TestResolveImportCycle(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "a.ts", `
import { sharedSchema } from './b';
`)
	writeFixture(t, dir, "b.ts", `
import { sharedSchema } from './a';
`)

	schema := newResolver().Resolve(context.Background(), "sharedSchema", a)
	assert.Nil(t, schema)
}

func TestResolveIdempotent(t *testing.T) {
	dir := t.TempDir()
	file := writeFixture(t, dir, "user.ts", `
import { z } from 'zod';
export const userSchema = z.object({ id: z.string() });
`)

	r := newResolver()
	first := r.Resolve(context.Background(), "userSchema", file)
	second := r.Resolve(context.Background(), "userSchema", file)

	require.NotNil(t, first)
	assert.Same(t, first, second)
}

func TestFallbackNames(t *testing.T) {
	assert.Equal(t,
		[]string{"UserSchema", "userSchema", "UserResponseSchema", "userResponseSchema"},
		fallbackNames("UserResponse"))
	assert.Equal(t,
		[]string{"UserSchema", "userSchema", "IUserSchema", "iUserSchema"},
		fallbackNames("IUser"))
	assert.Equal(t,
		[]string{"WidgetSchema", "widgetSchema"},
		fallbackNames("Widget"))
	assert.Empty(t, fallbackNames("userSchema"))
}
