// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities are free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers (ToDomain / FromDomain) convert between the two
// 4. Repositories use persistence models for database operations
//
// Files follow the bounded contexts: identity, partner, catalog, trade, inventory,
// engagement and report. All() lists every model for AutoMigrate on development
// databases; production schemas come from the SQL migrations.
package models
