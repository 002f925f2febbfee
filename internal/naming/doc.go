// Package naming computes deliverable names and shot tree paths.
//
// Every output follows the convention
// {shot}_{task}_{element}_v{version}_{rep}_{colorspace}.####.ext laid out as
// root/{shot}/{task}/{container}/{rep}_{colorspace}/ for image sequences,
// with movie renditions stored at the version container level.
package naming
