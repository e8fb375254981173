// Package substore implements the offer catalogs and subscription record
// stores consumed by pkg/subscription.
//
// Catalogs:
//   - NewInMemCatalog: fixed offers held in memory (DefaultOffers seeds it).
//   - LoadYAMLCatalog: offers read from a YAML file.
//   - NewPGCatalog: offers, access rules and their links in PostgreSQL.
//   - NewCachedCatalog: LRU/TTL read-through cache in front of any catalog.
//
// Record stores:
//   - NewInMemStore: map-backed, for tests and single-process deployments.
//   - NewPGStore: one row per user in PostgreSQL.
//   - NewMongoStore: one document per user in MongoDB.
//
// Every store implements Save as a compare-and-swap on Record.Version and
// returns subscription.ErrConcurrentUpdate when the stored version moved.
package substore
