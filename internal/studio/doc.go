// Package studio implements the study tools that sit beside the physics
// analyzer: flash cards, book finder, playlist and song recommendations, code
// conversion, essays, study-partner feedback, presentations, and stories.
//
// Every tool builds one prompt, sends it through the chat contract, and
// normalizes the answer. Tools that expect JSON cut the outermost array or
// object out of the reply before decoding, so prose around the payload is
// tolerated; a reply without one is a parse error.
package studio
