// Package signup holds the newsletter signup form state: field values, the
// dependent country/region selection and the submission state machine.
//
// State transitions are pure (see Reduce and AllTransitions). Form wraps the
// reducer with the region dataset and a Submitter so renderers only need to
// forward user input and read back State.
package signup
