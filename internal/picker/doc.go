// Package picker supplies a user-chosen file or folder path.
//
// A desktop shell would open a native dialog here. This backend has no
// window, so Terminal asks on the console and Static answers from
// configuration or tests. Both report "nothing chosen" as ok == false with a
// nil error; callers must not treat it as a failure.
package picker
