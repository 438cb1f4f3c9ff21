// Package domain contains the core business entities, value objects, and
// domain logic of the compatibility service: the question catalog model,
// questionnaire answers, computed scores and persisted reports. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
