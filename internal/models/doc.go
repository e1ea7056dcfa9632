// Package models defines the core domain models for pocketbook.
//
// # Budget
//
// A user owns an ordered list of categories. Each category carries a list of
// subcategory names; "General" is implicit and always valid. Entries record a
// single expense against a category and one of its subcategories.
//
//   - Category: budget grouping with a dense 0-based display order
//   - Entry: one expense, day granularity, non-negative decimal amount
//
// # Symptom diary
//
//   - Symptom: a tracked symptom with its own display order
//   - SymptomEntry: the severity logged for one symptom on one day
//   - DailyNote: free text attached to a day
//
// # Health record
//
// Medications, diagnoses, care providers and explainers are kept together in
// one HealthRecord per user and printed for a chosen provider.
//
// # Relationships
//
// Models refer to each other by ID strings, never by pointer. Every model is
// scoped to a single user through its UserID field; stores never return rows
// belonging to another user.
package models
