// Package services holds the application logic between HTTP controllers and
// the in-memory session store.
//
// Services defined in this package:
// - EntityService: registry transitions (update field, submit, begin edit,
//   delete) for every module, with the non-empty rule applied on submit
package services
